package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alligatorO15/fin-reports/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

// RangeHandler загрузка строк таблицы в postgres и обновление кэша
type RangeHandler struct {
	importService service.ImportService
	refresher     *service.Refresher
	log           *logrus.Logger
}

func NewRangeHandler(importService service.ImportService, refresher *service.Refresher, log *logrus.Logger) *RangeHandler {
	return &RangeHandler{importService: importService, refresher: refresher, log: log}
}

type importRequest struct {
	Values [][]interface{} `json:"values" binding:"required"`
}

// Import тело в формате ответа values API: {"values": [[...], ...]}
func (h *RangeHandler) Import(c *gin.Context) {
	var req importRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error(), "param": "values"})
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		respondError(c, h.log, err)
		return
	}

	imp, err := h.importService.ImportRange(c.Request.Context(), c.Param("range"), req.Values)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, imp)
}

func (h *RangeHandler) GetLastImport(c *gin.Context) {
	imp, err := h.importService.LastImport(c.Request.Context(), c.Param("range"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if imp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "range was never imported", "param": "range"})
		return
	}
	c.JSON(http.StatusOK, imp)
}

func (h *RangeHandler) RefreshCache(c *gin.Context) {
	if err := h.refresher.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
