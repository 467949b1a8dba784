package http

import (
	"net/http"
	"time"

	"auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/platform/logger"
	contractuc "auto-loan-contracts/internal/usecase/contract"

	"github.com/labstack/echo/v4"
)

type ContractHandler struct {
	uc  *contractuc.Usecase
	log *logger.Logger
}

func NewContractHandler(uc *contractuc.Usecase, log *logger.Logger) *ContractHandler {
	return &ContractHandler{uc: uc, log: logger.OrNop(log)}
}

type createContractReq struct {
	ApplicationID    int64  `json:"application_id"    validate:"required,gt=0"`
	SpecialCondition string `json:"special_condition" validate:"max=120"`
}

type fullUpdateContractReq struct {
	ApplicationID    *int64     `json:"application_id"    validate:"omitempty,gt=0"`
	SpecialCondition *string    `json:"special_condition" validate:"omitempty,max=120"`
	SignedAt         *time.Time `json:"signed_at"`
	Status           *string    `json:"status"            validate:"omitempty,status"`
}

type conditionReq struct {
	SpecialCondition string `json:"special_condition" validate:"max=120"`
}

type listContractsReq struct {
	Page    int    `query:"page"     validate:"gte=0"`
	Size    int    `query:"size"     validate:"gte=0,lte=100"`
	SortBy  string `query:"sort_by"  validate:"omitempty,oneof=id application_id generated_at signed_at status"`
	SortDir string `query:"sort_dir" validate:"omitempty,oneof=asc desc ASC DESC"`
	Status  string `query:"status"   validate:"omitempty,status"`
}

func (h *ContractHandler) Create(c echo.Context) error {
	var req createContractReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), contractuc.CreateInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContractHandler) Get(c echo.Context) error {
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

func (h *ContractHandler) GetByApplication(c echo.Context) error {
	appID, err := pathInt64(c, "application_id")
	if err != nil {
		return err
	}
	dto, err := h.uc.GetByApplication(c.Request().Context(), appID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) List(c echo.Context) error {
	var req listContractsReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := contractuc.ListInput{Page: req.Page, Size: req.Size, SortBy: req.SortBy, SortDir: req.SortDir}
	if req.Status != "" {
		st, _ := contract.ParseStatus(req.Status)
		in.Status = &st
	}
	page, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ContractHandler) StatusStats(c echo.Context) error {
	stats, err := h.uc.StatusStats(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *ContractHandler) Sign(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Sign(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Cancel(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Cancel(c.Request().Context(), id, c.QueryParam("reason"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) UpdateCondition(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	var req conditionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateSpecialCondition(c.Request().Context(), id, req.SpecialCondition)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) FullUpdate(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	var req fullUpdateContractReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := contractuc.FullUpdateInput{
		ApplicationID:    req.ApplicationID,
		SpecialCondition: req.SpecialCondition,
		SignedAt:         req.SignedAt,
	}
	if req.Status != nil {
		st, _ := contract.ParseStatus(*req.Status)
		in.Status = &st
	}
	dto, err := h.uc.FullUpdate(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) LogicalDelete(c echo.Context) error {
	id, err := pathUint(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.LogicalDelete(c.Request().Context(), id, c.QueryParam("reason"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) PhysicalDeleteByApplication(c echo.Context) error {
	appID, err := pathInt64(c, "application_id")
	if err != nil {
		return err
	}
	if err := h.uc.PhysicalDeleteByApplication(c.Request().Context(), appID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
