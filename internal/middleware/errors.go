package middleware

import (
	"fmt"

	"github.com/fidomax07/vetting-api/internal/constants"
	apierrors "github.com/fidomax07/vetting-api/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders the last error pushed with c.Error. It is the only
// place errors become HTTP responses.
func ErrorHandler(log logrus.FieldLogger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if apierrors.KindOf(err) == apierrors.KindUnclassified {
			log.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).WithError(err).Error("unhandled error")
		}

		apierrors.Respond(c, err, development)
	}
}

// Recovery turns panics into unclassified errors.
func Recovery(log *logrus.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(log.WriterLevel(logrus.ErrorLevel), func(c *gin.Context, recovered any) {
		apierrors.Respond(c, fmt.Errorf("panic: %v", recovered), development)
	})
}

// NoRoute answers unknown endpoints.
func NoRoute(c *gin.Context) {
	_ = c.Error(apierrors.NotFound(constants.MessageNoEndpoint))
}
