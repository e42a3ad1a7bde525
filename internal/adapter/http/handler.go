package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"delvelife/internal/app/command"
	"delvelife/internal/app/journal"
	"delvelife/internal/app/observe"
	"delvelife/internal/app/ports"
	"delvelife/internal/app/reward"
	"delvelife/internal/domain/actor"
	"delvelife/internal/domain/dungeon"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	CommandUC command.UseCase
	ObserveUC observe.UseCase
	JournalUC journal.UseCase
	RewardUC  reward.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	ac := s.Group("/api/actor")
	ac.GET("", h.observe)
	ac.POST("/travel", h.travel)
	ac.POST("/need", h.need)
	ac.POST("/dungeon-run", h.beginRun)

	s.POST("/api/orchestrator/assign", h.assign)
	s.GET("/api/journal", h.journal)
	s.GET("/api/runs", h.runs)
	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) travel(c context.Context, ctx *app.RequestContext) {
	var body command.TravelRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.CommandUC.Travel(c, body); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusAccepted, map[string]any{"accepted": true})
}

func (h Handler) need(c context.Context, ctx *app.RequestContext) {
	var body command.NeedRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.CommandUC.StartNeed(c, body); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusAccepted, map[string]any{"accepted": true})
}

func (h Handler) beginRun(c context.Context, ctx *app.RequestContext) {
	var body command.RunRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CommandUC.BeginRun(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) assign(c context.Context, ctx *app.RequestContext) {
	var body command.RunRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.CommandUC.Assign(c, body); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusAccepted, map[string]any{"accepted": true})
}

func (h Handler) journal(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.JournalUC.Execute(c, journal.Request{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) runs(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.RewardUC.History(c, reward.HistoryRequest{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, actor.ErrRunInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "run_in_progress", err.Error())
	case errors.Is(err, command.ErrInvalidLevelTable),
		errors.Is(err, dungeon.ErrInvalidRunDefinition):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_level_table", err.Error())
	case errors.Is(err, command.ErrInvalidRequest),
		errors.Is(err, journal.ErrInvalidRequest),
		errors.Is(err, reward.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
