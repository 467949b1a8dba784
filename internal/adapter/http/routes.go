package http

import "github.com/labstack/echo/v4"

// Register mounts every route on e. Static segments such as stats/status and
// application/ take precedence over :id in Echo's router.
func Register(e *echo.Echo, h *Handler, contracts *ContractHandler, notes *NoteHandler) {
	e.GET("/health", h.Health)

	api := e.Group("/api")

	cg := api.Group("/contracts")
	cg.GET("", contracts.List)
	cg.POST("", contracts.Create)
	cg.GET("/stats/status", contracts.StatusStats)
	cg.GET("/application/:application_id", contracts.GetByApplication)
	cg.DELETE("/application/:application_id", contracts.PhysicalDeleteByApplication)
	cg.GET("/:id", contracts.Get)
	cg.PUT("/:id", contracts.FullUpdate)
	cg.DELETE("/:id", contracts.LogicalDelete)
	cg.PATCH("/:id/sign", contracts.Sign)
	cg.PATCH("/:id/cancel", contracts.Cancel)
	cg.PATCH("/:id/condition", contracts.UpdateCondition)

	ng := api.Group("/notes")
	ng.POST("/schedule", notes.Generate)
	ng.POST("/schedule/preview", notes.Preview)
	ng.GET("/application/:application_id", notes.ListByApplication)
	ng.DELETE("/application/:application_id", notes.DeleteAllForApplication)
	ng.GET("/application/:application_id/exists", notes.Exists)
	ng.GET("/application/:application_id/installments/:number", notes.GetByInstallment)
	ng.GET("/:id", notes.Get)
	ng.PUT("/:id", notes.Update)
	ng.DELETE("/:id", notes.LogicalDelete)
}
