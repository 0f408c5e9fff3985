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

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todonaut/todonaut/pkg/clients"
	"github.com/todonaut/todonaut/pkg/config"
	"github.com/todonaut/todonaut/pkg/store"
)

type Handlers struct {
	config   *config.AppConfig
	store    *store.Store
	upstream clients.Service
}

func NewHandlers(cfg *config.AppConfig, dataStore *store.Store, upstream clients.Service) *Handlers {
	return &Handlers{
		config:   cfg,
		store:    dataStore,
		upstream: upstream,
	}
}

func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.config.App.Name + "-api",
		"status":  "running",
	})
}
