package main

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "delvelife/internal/adapter/http"
	metricsinmem "delvelife/internal/adapter/metrics/inmemory"
	gormrepo "delvelife/internal/adapter/repo/gorm"
	"delvelife/internal/adapter/repo/memory"
	simruntime "delvelife/internal/adapter/sim/runtime"
	"delvelife/internal/app/command"
	"delvelife/internal/app/journal"
	"delvelife/internal/app/observe"
	"delvelife/internal/app/ports"
	"delvelife/internal/app/reward"
	"delvelife/internal/domain/actor"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	runRepo, journalRepo, ledgerRepo, txManager := buildRepos()
	recorder := metricsinmem.NewRecorder()

	rewardUC := reward.UseCase{
		Tx:     txManager,
		Runs:   runRepo,
		Ledger: ledgerRepo,
		Now:    time.Now,
	}

	places := buildPlacesFromEnv()
	delver := actor.New(
		strEnv("ACTOR_NAME", "delver-1"),
		places.Home,
		floatEnv("ACTOR_SPEED", 10),
		places,
	)

	seed := int64(intEnv("SIM_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := simruntime.New(simruntime.Config{
		Actor:        delver,
		Orchestrator: simruntime.NewOrchestrator(rewardUC),
		TickInterval: time.Duration(intEnv("SIM_TICK_MS", 50)) * time.Millisecond,
		RNG:          rand.New(rand.NewSource(seed)),
	})
	sim.RegisterObserver(simruntime.JournalObserver(journalRepo, log.Printf))
	sim.RegisterObserver(simruntime.MetricsObserver(recorder))
	sim.RegisterObserver(func(e ports.JournalEntry) {
		if e.Type == actor.EventStatus {
			return
		}
		log.Printf("sim: %s %v", e.Type, e.Payload)
	})

	h := httpadapter.Handler{
		CommandUC: command.UseCase{Sim: sim, Metrics: recorder},
		ObserveUC: observe.UseCase{Sim: sim, Ledger: ledgerRepo},
		JournalUC: journal.UseCase{Entries: journalRepo},
		RewardUC:  rewardUC,
		KPI:       recorder,
	}

	s := server.Default(server.WithHostPorts(strEnv("HTTP_ADDR", ":8080")))
	h.RegisterRoutes(s)

	sim.Start()
	defer sim.Stop()

	log.Printf("delvelife server listening on %s (actor: %s, seed: %d)", strEnv("HTTP_ADDR", ":8080"), delver.Name(), seed)
	s.Spin()
}

func buildRepos() (ports.RunRecordRepository, ports.JournalRepository, ports.RewardLedgerRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("DELVELIFE_DB_DSN"))
	if dsn == "" {
		log.Println("DELVELIFE_DB_DSN not set, using in-memory store")
		store := memory.NewStore()
		return memory.NewRunRecordRepo(store), memory.NewJournalRepo(store), memory.NewRewardLedgerRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewRunRecordRepo(db), gormrepo.NewJournalRepo(db), gormrepo.NewRewardLedgerRepo(db), gormrepo.NewTxManager(db)
}

func buildPlacesFromEnv() actor.Places {
	return actor.Places{
		Home:          posEnv("PLACE_HOME", actor.Position{X: 0, Y: 0}),
		Dungeon:       posEnv("PLACE_DUNGEON", actor.Position{X: 200, Y: 0}),
		Food:          posEnv("PLACE_FOOD", actor.Position{X: 50, Y: 0}),
		Healing:       posEnv("PLACE_HEALING", actor.Position{X: 0, Y: 50}),
		Entertainment: posEnv("PLACE_ENTERTAINMENT", actor.Position{X: 50, Y: 50}),
	}
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// posEnv parses "x,y" pairs.
func posEnv(key string, fallback actor.Position) actor.Position {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return fallback
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return fallback
	}
	return actor.Position{X: x, Y: y}
}
