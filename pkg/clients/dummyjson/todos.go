package dummyjson

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/todonaut/todonaut/pkg/clients"
	"github.com/todonaut/todonaut/pkg/logger"
	"github.com/todonaut/todonaut/pkg/types"
)

const fetchPageSize = 100

type userTodosResponse struct {
	Todos []types.Todo `json:"todos"`
	Total int          `json:"total"`
}

// FetchUserTodos pulls every todo the upstream holds for the user, paging with
// a fixed limit until the reported total is reached or a page comes back empty.
func (c *Client) FetchUserTodos(ctx context.Context, userID int, token string) ([]types.Todo, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "dummyjson",
		"userID":  userID,
	})

	log.Info("fetching all todos for user")

	all := make([]types.Todo, 0, fetchPageSize)
	skip := 0
	for {
		url := fmt.Sprintf("%s/todos/user/%d?limit=%d&skip=%d", c.baseURL, userID, fetchPageSize, skip)
		respBody, statusCode, err := c.sendRequest(ctx,
			http.MethodGet, url, nil, bearer(token), "backend.dummyjson.FetchUserTodos")
		if err != nil {
			log.WithError(err).Error("error fetching todos page")
			return nil, err
		}
		if statusCode < 200 || statusCode >= 300 {
			log.WithField("status", statusCode).Error("upstream rejected todos fetch")
			return nil, &clients.APIError{StatusCode: statusCode, Body: respBody}
		}

		page := userTodosResponse{}
		if err := json.Unmarshal(respBody, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todos page: %w", err)
		}

		all = append(all, page.Todos...)
		skip += fetchPageSize

		if len(all) >= page.Total || len(page.Todos) == 0 {
			break
		}
	}

	log.WithField("total_todo_count", len(all)).Info("found todos")
	return all, nil
}
