package journal

import "delvelife/internal/app/ports"

type Request struct {
	Limit int
}

type Response struct {
	Entries []ports.JournalEntry `json:"entries"`
}
