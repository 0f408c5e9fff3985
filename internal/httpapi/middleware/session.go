/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todonaut/todonaut/pkg/logger"
	"github.com/todonaut/todonaut/pkg/session"
	"github.com/todonaut/todonaut/pkg/store"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	UserIDKey = "userID"
	TokenKey  = "sessionToken"
)

// SessionAuth authenticates the request via the session cookie and hydrates
// the user's bucket on first access. Requests without a valid token never
// reach the store.
func SessionAuth(todos store.TodoStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := session.FromRequest(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		userID, err := todos.Hydrate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
				return
			}
			logger.Logger(c.Request.Context()).WithError(err).Error("hydration failed")
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"message": "upstream failure"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)
		c.Next()
	}
}
