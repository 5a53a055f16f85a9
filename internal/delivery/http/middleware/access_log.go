package middleware

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
)

type redispatchKey struct{}

// markRedispatched tags a request that LocaleResolver sends through the
// engine a second time.
func markRedispatched(c *gin.Context) {
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), redispatchKey{}, true))
}

func redispatched(c *gin.Context) bool {
	v, _ := c.Request.Context().Value(redispatchKey{}).(bool)
	return v
}

// AccessLogger is gin's access log writing to out. A rewritten request is
// logged once, by the outer pass, under the path the client asked for.
func AccessLogger(out io.Writer) gin.HandlerFunc {
	log := gin.LoggerWithWriter(out)
	return func(c *gin.Context) {
		if redispatched(c) {
			c.Next()
			return
		}
		log(c)
	}
}
