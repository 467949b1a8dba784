package http

import (
	"net/http"
	"strconv"

	"auto-loan-contracts/internal/platform/logger"
	noteuc "auto-loan-contracts/internal/usecase/note"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type NoteHandler struct {
	uc  *noteuc.Usecase
	log *logger.Logger
}

func NewNoteHandler(uc *noteuc.Usecase, log *logger.Logger) *NoteHandler {
	return &NoteHandler{uc: uc, log: logger.OrNop(log)}
}

type scheduleReq struct {
	ApplicationID int64           `json:"application_id" validate:"required,gt=0"`
	Principal     decimal.Decimal `json:"principal"      validate:"gt=0,dec2"`
	AnnualRate    decimal.Decimal `json:"annual_rate"    validate:"gt=0"`
	TermMonths    int             `json:"term_months"    validate:"required,gt=0,lte=600"`
}

type previewReq struct {
	Principal  decimal.Decimal `json:"principal"   validate:"gt=0,dec2"`
	AnnualRate decimal.Decimal `json:"annual_rate" validate:"gt=0"`
	TermMonths int             `json:"term_months" validate:"required,gt=0,lte=600"`
}

type updateNoteReq struct {
	ID                uint64 `json:"id"                 validate:"required"`
	InstallmentNumber int    `json:"installment_number" validate:"required,gte=1"`
	DocumentPath      string `json:"document_path"      validate:"required,max=200"`
}

func (h *NoteHandler) Generate(c echo.Context) error {
	var req scheduleReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	notes, err := h.uc.Generate(c.Request().Context(), noteuc.GenerateInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, notes)
}

func (h *NoteHandler) Preview(c echo.Context) error {
	var req previewReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rows, err := h.uc.Preview(c.Request().Context(), noteuc.PreviewInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *NoteHandler) Get(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NoteHandler) ListByApplication(c echo.Context) error {
	appID, err := pathInt64(c, "application_id")
	if err != nil {
		return err
	}
	notes, err := h.uc.ListByApplication(c.Request().Context(), appID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) GetByInstallment(c echo.Context) error {
	appID, err := pathInt64(c, "application_id")
	if err != nil {
		return err
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid path param number")
	}
	dto, err := h.uc.GetByApplicationAndInstallment(c.Request().Context(), appID, number)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NoteHandler) Exists(c echo.Context) error {
	appID, err := pathInt64(c, "application_id")
	if err != nil {
		return err
	}
	ok, err := h.uc.ExistsForApplication(c.Request().Context(), appID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": ok})
}

func (h *NoteHandler) Update(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	var req updateNoteReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), id, noteuc.UpdateInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NoteHandler) LogicalDelete(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.LogicalDelete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NoteHandler) DeleteAllForApplication(c echo.Context) error {
	appID, err := pathInt64(c, "application_id")
	if err != nil {
		return err
	}
	removed, err := h.uc.DeleteAllForApplication(c.Request().Context(), appID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"removed": removed})
}
