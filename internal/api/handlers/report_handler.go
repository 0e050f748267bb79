package handlers

import (
	"net/http"
	"strconv"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/alligatorO15/fin-reports/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	reportService service.ReportService
	log           *logrus.Logger
}

func NewReportHandler(reportService service.ReportService, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, log: log}
}

// параметры приходят строками: валидатор проверяет формат, диапазоны проверяет report
type yearQuery struct {
	Year string `form:"year" binding:"omitempty,number"`
}

type monthQuery struct {
	Year            string `form:"year" binding:"omitempty,number"`
	Month           string `form:"month" binding:"required,number"`
	CashAtBeginning string `form:"cash_at_beginning" binding:"omitempty,numeric"`
}

type cashFlowQuery struct {
	Year            string `form:"year" binding:"omitempty,number"`
	Month           string `form:"month" binding:"omitempty,number"`
	CashAtBeginning string `form:"cash_at_beginning" binding:"omitempty,numeric"`
}

type predictionQuery struct {
	Months          string `form:"months" binding:"required,number"`
	Mode            string `form:"mode"`
	Year            string `form:"year" binding:"omitempty,number"`
	Month           string `form:"month" binding:"required,number"`
	CashAtBeginning string `form:"cash_at_beginning" binding:"omitempty,numeric"`
	GrowthRate      string `form:"growth_rate" binding:"omitempty,numeric"`
	LookbackMonths  string `form:"lookback_months" binding:"omitempty,number"`
}

// year без параметра - текущий год по часам сервиса
func (h *ReportHandler) year(s string) int {
	if s == "" {
		return h.reportService.Now().Year()
	}
	return atoi(s)
}

// atoi строка уже прошла проверку number. При переполнении Atoi возвращает
// предельное значение, его отсекает проверка диапазона
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func optionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n := atoi(s)
	return &n
}

func optionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func (h *ReportHandler) GetProfitLoss(c *gin.Context) {
	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, err)
		return
	}

	pl, err := h.reportService.ProfitAndLoss(c.Request.Context(), h.year(q.Year), atoi(q.Month))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pl)
}

func (h *ReportHandler) GetAnnualProfitLoss(c *gin.Context) {
	var q yearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, err)
		return
	}

	pl, err := h.reportService.AnnualProfitAndLoss(c.Request.Context(), h.year(q.Year))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pl)
}

// GetCashFlow без month - годовой отчет с разбивкой по месяцам
func (h *ReportHandler) GetCashFlow(c *gin.Context) {
	var q cashFlowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, err)
		return
	}

	cf, err := h.reportService.CashFlow(c.Request.Context(), h.year(q.Year), optionalInt(q.Month), optionalDecimal(q.CashAtBeginning))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cf)
}

func (h *ReportHandler) GetCashFlowDetails(c *gin.Context) {
	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, err)
		return
	}

	details, err := h.reportService.CashFlowDetails(c.Request.Context(), h.year(q.Year), atoi(q.Month), optionalDecimal(q.CashAtBeginning))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *ReportHandler) GetPaymentSchedule(c *gin.Context) {
	schedule, err := h.reportService.PaymentSchedule(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *ReportHandler) GetPrediction(c *gin.Context) {
	var q predictionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, err)
		return
	}

	req := models.PredictionRequest{
		Year:            h.year(q.Year),
		Month:           atoi(q.Month),
		Months:          atoi(q.Months),
		Mode:            models.PredictionMode(q.Mode),
		CashAtBeginning: optionalDecimal(q.CashAtBeginning),
		GrowthRate:      optionalDecimal(q.GrowthRate),
	}
	if q.LookbackMonths != "" {
		req.LookbackMonths = atoi(q.LookbackMonths)
	}

	prediction, err := h.reportService.Predict(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}
