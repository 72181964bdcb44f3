package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report JSON names instead of Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				name, _, _ = strings.Cut(f.Tag.Get("form"), ",")
			}
			return name
		})
	}
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// writeError is the single place where errors become HTTP responses.
func writeError(c *gin.Context, err error) {
	if verr, ok := domain.AsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, detailResponse{Detail: "Not found."})
	case errors.Is(err, domain.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, detailResponse{Detail: unauthorizedDetail(err)})
	case errors.Is(err, domain.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, detailResponse{Detail: "You do not have permission to perform this action."})
	case errors.Is(err, domain.ErrMethodNotAllowed):
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, detailResponse{Detail: fmt.Sprintf("Method \"%s\" not allowed.", c.Request.Method)})
	default:
		log.Printf("request_id=%s %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, detailResponse{Detail: "Internal server error."})
	}
}

func unauthorizedDetail(err error) string {
	msg := err.Error()
	if msg == domain.ErrUnauthorized.Error() {
		return "Authentication credentials were not provided."
	}
	if _, rest, ok := strings.Cut(msg, domain.ErrUnauthorized.Error()+": "); ok {
		return rest
	}
	return msg
}

// bindError turns gin binding failures into field keyed validation errors.
func bindError(err error) error {
	verr := &domain.ValidationError{}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var timeErr *time.ParseError
	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Add(fieldKey(fe), fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = domain.NonFieldErrors
		}
		verr.Add(field, typeMessage(typeErr.Type.Kind()))
	case errors.As(err, &timeErr):
		verr.Add(domain.NonFieldErrors, "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm:ssZ.")
	case errors.As(err, &syntaxErr):
		verr.Add(domain.NonFieldErrors, "JSON parse error - "+syntaxErr.Error())
	default:
		verr.Add(domain.NonFieldErrors, err.Error())
	}
	return verr
}

// fieldKey drops the request struct name from the namespace: "orderRequest.tickets[0].row" -> "tickets[0].row".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", minimumFor(fe))
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

func minimumFor(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		var n int
		if _, err := fmt.Sscan(fe.Param(), &n); err == nil {
			return fmt.Sprint(n + 1)
		}
	}
	return fe.Param()
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		return "Expected a list of items."
	case reflect.Bool:
		return "Must be a valid boolean."
	default:
		return "Invalid value."
	}
}
