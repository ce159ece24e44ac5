package assignment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carebridge/carebridge/internal/platform/apperr"
	"github.com/carebridge/carebridge/internal/platform/auth"
	"github.com/carebridge/carebridge/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("caregiver", "supervisor"))
	read.GET("/patients/:id/assignments", h.History)
	read.GET("/caregivers/:id/assignments", h.ListByCaregiver)

	write := api.Group("", auth.RequireRole("supervisor"))
	write.POST("/patients/:id/assignments/auto", h.AutoAssign)
	write.POST("/patients/:id/assignments", h.Assign)
	write.POST("/assignments/:id/unassign", h.Unassign)
}

func actorID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	return id, nil
}

func (h *Handler) AutoAssign(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.AutoAssign(c.Request().Context(), patientID, actor)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

type assignRequest struct {
	CaregiverID uuid.UUID `json:"caregiver_id"`
	Reason      string    `json:"reason"`
}

func (h *Handler) Assign(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.CaregiverID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "caregiver_id is required")
	}
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.Assign(c.Request().Context(), patientID, req.CaregiverID, actor, req.Reason)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

type unassignRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Unassign(c echo.Context) error {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req unassignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Unassign(c.Request().Context(), assignmentID, actor, req.Reason)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) History(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.History(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByCaregiver(c echo.Context) error {
	caregiverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByCaregiver(c.Request().Context(), caregiverID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
