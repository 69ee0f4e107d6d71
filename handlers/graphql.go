package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"TaskBackend/utils"
)

type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// GraphQL serves the schema over POST. Resolver errors come back in the
// standard errors array of the response body, so the HTTP status stays 200
// once the request itself parses.
func GraphQL(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			utils.ResponseWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req GraphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		utils.ResponseWithJson(w, http.StatusOK, result)
	}
}
