package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	apierrors "github.com/followjobs/followjobs/api/errors"
	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/interfaces"
	"github.com/followjobs/followjobs/internal/enum"
	apperrors "github.com/followjobs/followjobs/internal/errors"
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/repository"
	"github.com/followjobs/followjobs/internal/tracing"
	"github.com/followjobs/followjobs/internal/utils"
)

const defaultStaleDays = 30

type ApplicationsHandler struct {
	service interfaces.JobApplicationService
	log     logger.Logger
}

func NewApplicationsHandler(service interfaces.JobApplicationService, log logger.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{
		service: service,
		log:     log,
	}
}

func (h *ApplicationsHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ListApplications")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		applications, err := h.service.FindAll(ctx)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, applications)
	}
}

func (h *ApplicationsHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "GetApplication")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := h.parseID(c, span)
		if !ok {
			return
		}

		application, err := h.service.FindByID(ctx, id)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		if application == nil {
			respondApplicationNotFound(c, span, id)
			return
		}
		c.JSON(http.StatusOK, application)
	}
}

// ListByPortal narrows to a single status when the status query parameter is set.
func (h *ApplicationsHandler) ListByPortal() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ListApplicationsByPortal")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		portal := c.Param("portal")
		var applications []*dto.JobApplication
		var err error
		if rawStatus, ok := c.GetQuery("status"); ok {
			status, parseErr := enum.ParseApplicationStatus(rawStatus)
			if parseErr != nil {
				tracing.TraceErr(span, parseErr)
				apierrors.RespondBadRequest(c, fmt.Sprintf("Invalid status: %s", rawStatus))
				return
			}
			applications, err = h.service.FindByPortalAndStatus(ctx, portal, status)
		} else {
			applications, err = h.service.FindByPortal(ctx, portal)
		}
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, applications)
	}
}

func (h *ApplicationsHandler) ListByStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ListApplicationsByStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		status, err := enum.ParseApplicationStatus(c.Param("status"))
		if err != nil {
			tracing.TraceErr(span, err)
			apierrors.RespondBadRequest(c, fmt.Sprintf("Invalid status: %s", c.Param("status")))
			return
		}

		applications, err := h.service.FindByStatus(ctx, status)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, applications)
	}
}

// Search matches by company when given, otherwise by position.
func (h *ApplicationsHandler) Search() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "SearchApplications")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		company, hasCompany := c.GetQuery("company")
		position, hasPosition := c.GetQuery("position")

		var applications []*dto.JobApplication
		var err error
		switch {
		case hasCompany:
			applications, err = h.service.SearchByCompany(ctx, company)
		case hasPosition:
			applications, err = h.service.SearchByPosition(ctx, position)
		default:
			err = apperrors.ErrSearchCriteriaMissing
		}
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, applications)
	}
}

func (h *ApplicationsHandler) ListByDateRange() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ListApplicationsByDateRange")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		from, err := time.Parse(time.RFC3339, c.Query("from"))
		if err != nil {
			tracing.TraceErr(span, err)
			apierrors.RespondBadRequest(c, "Query parameter from must be an RFC3339 timestamp")
			return
		}
		to, err := time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			tracing.TraceErr(span, err)
			apierrors.RespondBadRequest(c, "Query parameter to must be an RFC3339 timestamp")
			return
		}

		applications, err := h.service.FindByDateRange(ctx, from, to)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, applications)
	}
}

func (h *ApplicationsHandler) ListStale() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ListStaleApplications")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		days := defaultStaleDays
		if raw, ok := c.GetQuery("days"); ok {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				tracing.TraceErr(span, err)
				apierrors.RespondBadRequest(c, apperrors.ErrInvalidDays.Error())
				return
			}
			days = parsed
		}

		applications, err := h.service.FindStale(ctx, days)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, applications)
	}
}

func (h *ApplicationsHandler) Stats() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "GetApplicationStats")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		stats, err := h.service.Stats(ctx)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewApplicationStatsResponse(*stats))
	}
}

func (h *ApplicationsHandler) PortalStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "GetPortalStats")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		counts, err := h.service.PortalCounts(ctx)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}

func (h *ApplicationsHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "CreateApplication")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var input dto.JobApplicationInput
		if !bindJSON(c, span, &input) {
			return
		}
		tracing.LogObjectAsJson(span, "request", input)

		application, err := h.service.Create(ctx, &input)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusCreated, application)
	}
}

func (h *ApplicationsHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "UpdateApplication")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := h.parseID(c, span)
		if !ok {
			return
		}

		var input dto.JobApplicationInput
		if !bindJSON(c, span, &input) {
			return
		}
		tracing.LogObjectAsJson(span, "request", input)

		application, err := h.service.Update(ctx, id, &input)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		if application == nil {
			respondApplicationNotFound(c, span, id)
			return
		}
		c.JSON(http.StatusOK, application)
	}
}

func (h *ApplicationsHandler) UpdateStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "UpdateApplicationStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := h.parseID(c, span)
		if !ok {
			return
		}

		var input dto.UpdateStatus
		if !bindJSON(c, span, &input) {
			return
		}

		application, err := h.service.UpdateStatus(ctx, id, &input)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		if application == nil {
			respondApplicationNotFound(c, span, id)
			return
		}
		c.JSON(http.StatusOK, application)
	}
}

func (h *ApplicationsHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DeleteApplication")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := h.parseID(c, span)
		if !ok {
			return
		}

		deleted, err := h.service.Delete(ctx, id)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		if !deleted {
			respondApplicationNotFound(c, span, id)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *ApplicationsHandler) Clean() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "CleanInvalidApplications")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		deleted, err := h.service.CleanInvalidApplications(ctx)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.String(http.StatusOK, "Applications deleted: %d", deleted)
	}
}

func (h *ApplicationsHandler) parseID(c *gin.Context, span opentracing.Span) (uint64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		tracing.TraceErr(span, err)
		apierrors.RespondBadRequest(c, fmt.Sprintf("%s: %s", apperrors.ErrInvalidID.Error(), c.Param("id")))
		return 0, false
	}
	tracing.TagEntity(span, utils.FormatID(id))
	return id, true
}

// respondError is the single place service errors become status codes.
func (h *ApplicationsHandler) respondError(c *gin.Context, span opentracing.Span, err error) {
	tracing.TraceErr(span, err)

	switch {
	case errors.Is(err, repository.ErrConstraintViolation):
		apierrors.RespondConflict(c, "A job application with the same gmail message id already exists")
	case errors.Is(err, apperrors.ErrInvalidDays),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrSearchCriteriaMissing):
		apierrors.RespondBadRequest(c, err.Error())
	default:
		h.log.Errorf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		apierrors.RespondInternalError(c)
	}
}

func bindJSON(c *gin.Context, span opentracing.Span, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	tracing.TraceErr(span, err)

	if fieldErrors := apierrors.FieldErrorsFrom(err); fieldErrors != nil {
		apierrors.RespondValidation(c, fieldErrors)
		return false
	}
	apierrors.RespondBadRequest(c, "Malformed request body")
	return false
}

func respondApplicationNotFound(c *gin.Context, span opentracing.Span, id uint64) {
	message := fmt.Sprintf("Job application not found with id: %d", id)
	tracing.TraceErr(span, errors.Wrap(apperrors.ErrApplicationNotFound, message))
	apierrors.RespondNotFound(c, message)
}
