package api

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Tresillo2017/classlimit/core"
	"github.com/Tresillo2017/classlimit/types"
	"github.com/gofiber/fiber/v2"
)

type subjectView struct {
	core.SubjectRecord
	Subtitle string `json:"subtitle"`
}

type resultView struct {
	core.SubjectResult
	Subtitle string `json:"subtitle"`
	Detail   string `json:"detail"`
}

type aggregateView struct {
	core.AggregateResult
	Summary string `json:"summary"`
	Detail  string `json:"detail"`
}

type addSubjectRequest struct {
	Name        string `json:"name"`
	WeeklyHours int    `json:"weekly_hours"`
}

type configRequest struct {
	RequiredAttendance *int `json:"required_attendance"`
	TotalWeeks         *int `json:"total_weeks"`
	SessionHours       *int `json:"session_hours"`
}

func newSubjectView(rec core.SubjectRecord) subjectView {
	return subjectView{SubjectRecord: rec, Subtitle: core.SubjectSubtitle(rec)}
}

func (s *Server) subjectsResponse(c *fiber.Ctx, status int) error {
	recs := s.planner.Subjects()
	views := make([]subjectView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, newSubjectView(rec))
	}

	return c.Status(status).JSON(fiber.Map{
		"subjects": views,
		"count":    len(views),
		"config":   s.planner.Config(),
	})
}

func (s *Server) handleListSubjects(c *fiber.Ctx) error {
	return s.subjectsResponse(c, fiber.StatusOK)
}

func (s *Server) handleAddSubject(c *fiber.Ctx) error {
	var req addSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: invalid request body", core.ErrInvalidInput))
	}

	rec, err := s.planner.AddSubject(req.Name, req.WeeklyHours)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newSubjectView(rec))
}

func (s *Server) handleRemoveSubject(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.planner.RemoveSubject(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleSkip(op func(types.SubjectID) (core.SubjectRecord, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := subjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		rec, err := op(id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(newSubjectView(rec))
	}
}

func (s *Server) handleGetConfig(c *fiber.Ctx) error {
	return c.JSON(s.planner.Config())
}

// handlePutConfig only changes the values present in the body.
func (s *Server) handlePutConfig(c *fiber.Ctx) error {
	var req configRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: invalid request body", core.ErrInvalidInput))
	}

	cfg, err := s.planner.UpdateConfig(func(cfg *core.Config) {
		if req.RequiredAttendance != nil {
			cfg.RequiredAttendancePercent = *req.RequiredAttendance
		}
		if req.TotalWeeks != nil {
			cfg.TotalWeeks = *req.TotalWeeks
		}
		if req.SessionHours != nil {
			cfg.SessionHours = *req.SessionHours
		}
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cfg)
}

func (s *Server) handleCalculate(c *fiber.Ctx) error {
	res, err := s.planner.Recalculate()
	if err != nil {
		return writeError(c, err)
	}

	results := make([]resultView, 0, len(res.PerSubject))
	for _, r := range res.PerSubject {
		results = append(results, resultView{
			SubjectResult: r,
			Subtitle:      core.ResultSubtitle(r),
			Detail:        core.ResultDetail(r.CalculationResult),
		})
	}

	body := fiber.Map{
		"config":   res.Config,
		"subjects": results,
	}
	if res.Aggregate != nil {
		body["aggregate"] = aggregateView{
			AggregateResult: *res.Aggregate,
			Summary:         core.AggregateSummary(*res.Aggregate),
			Detail:          core.AggregateDetail(*res.Aggregate),
		}
	}
	return c.JSON(body)
}

func (s *Server) handleResetAll(c *fiber.Ctx) error {
	if err := s.planner.ResetAll(); err != nil {
		return writeError(c, err)
	}
	return s.subjectsResponse(c, fiber.StatusOK)
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	buf := &bytes.Buffer{}
	if err := s.planner.Export(buf); err != nil {
		return writeError(c, err)
	}

	c.Attachment(core.SuggestedExportName)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (s *Server) handleImport(c *fiber.Ctx) error {
	if err := s.planner.Import(c.Body()); err != nil {
		return writeError(c, err)
	}
	return s.subjectsResponse(c, fiber.StatusOK)
}

func (s *Server) handleGetOnboarding(c *fiber.Ctx) error {
	shown, err := s.planner.OnboardingShown()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"shown": shown})
}

func (s *Server) handleMarkOnboarding(c *fiber.Ctx) error {
	if err := s.planner.MarkOnboardingShown(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"shown": true})
}

func subjectID(c *fiber.Ctx) (types.SubjectID, error) {
	id, err := types.SubjectIDFromString(c.Params("id"))
	if err != nil {
		return types.SubjectID{}, fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	return id, nil
}

func writeError(c *fiber.Ctx, err error) error {
	var importErr *core.ImportError

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &importErr):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, core.ErrSubjectNotFound):
		status = fiber.StatusNotFound
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
