package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vita/pkg/analytics/serviceImp"
)

type AnalyticsCtrl struct{ svc *serviceImp.AnalyticsSvc }

func New(svc *serviceImp.AnalyticsSvc) *AnalyticsCtrl { return &AnalyticsCtrl{svc: svc} }

func (h *AnalyticsCtrl) Summary(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.Summary(uid, c.QueryParam("range"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load analytics summary"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsCtrl) Export(c echo.Context) error {
	uid := c.Get("uid").(string)
	buf, err := h.svc.ExportXLSX(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to export analytics"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="vita-history.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
