package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_without":
		return fmt.Sprintf("%s is required when %s is empty", fe.Field(), lowerFirst(fe.Param()))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", fe.Field(), lowerFirst(fe.Param()))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// decodeJSON reads a JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return validate.Struct(dst)
}

// pathID parses a chi URL parameter as an object id.
func pathID(r *http.Request, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrInvalidID, param)
	}
	return id, nil
}

// currentUser returns the authenticated caller. Routes using it sit behind
// middleware.Authenticate, so a miss means the route was wired without it.
func currentUser(r *http.Request) (primitive.ObjectID, error) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return primitive.NilObjectID, ErrUnauthorized
	}
	return id, nil
}

// viewer returns the caller if authenticated and the zero id otherwise.
func viewer(r *http.Request) primitive.ObjectID {
	id, _ := middleware.UserID(r.Context())
	return id
}

// pageRequest reads page, limit, sortBy and sortType from the query string.
// sortBy names the field and sortType the direction (asc or desc).
func pageRequest(r *http.Request, allowed model.SortAllowlist) (model.PageRequest, error) {
	q := r.URL.Query()

	page, err := queryInt(q.Get("page"))
	if err != nil {
		return model.PageRequest{}, model.ErrInvalidPage
	}
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		return model.PageRequest{}, model.ErrInvalidLimit
	}
	dir, err := model.ParseSortDirection(q.Get("sortType"))
	if err != nil {
		return model.PageRequest{}, err
	}

	return model.NewPageRequest(page, limit, strings.TrimSpace(q.Get("sortBy")), dir, allowed)
}

func queryInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
