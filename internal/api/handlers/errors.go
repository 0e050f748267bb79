package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// RegisterValidation ошибки валидатора называют параметр так же, как в запросе (form/json тег)
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// respondError 400 для ошибок параметров, 502 если не ответил источник, иначе 500
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("invalid %s: failed on %q", fe.Field(), fe.Tag()),
			"param": fe.Field(),
		})
		return
	}

	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "param": vErr.Param})
		return
	}

	if errors.Is(err, sheets.ErrUpstream) {
		log.WithError(err).Warn("источник данных недоступен")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	log.WithError(err).Error("ошибка обработки запроса")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
