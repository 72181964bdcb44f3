package api

import (
	"math"
	"net/url"
	"strconv"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
)

type paginatedResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Paginator reads the "page" query parameter, numbered from 1.
type Paginator struct {
	size int
}

func NewPaginator(size int) Paginator {
	if size <= 0 {
		size = 10
	}
	return Paginator{size: size}
}

func (p Paginator) page(c *gin.Context) (domain.Page, int, error) {
	number := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > math.MaxInt/p.size {
			return domain.Page{}, 0, domain.ErrNotFound
		}
		number = n
	}
	return domain.Page{Limit: p.size, Offset: (number - 1) * p.size}, number, nil
}

// response fails with ErrNotFound for pages past the last one.
func (p Paginator) response(c *gin.Context, number, count int, results any) (paginatedResponse, error) {
	if number > 1 && (number-1)*p.size >= count {
		return paginatedResponse{}, domain.ErrNotFound
	}
	resp := paginatedResponse{Count: count, Results: results}
	if number*p.size < count {
		resp.Next = pageURL(c, number+1)
	}
	if number > 1 {
		resp.Previous = pageURL(c, number-1)
	}
	return resp, nil
}

func pageURL(c *gin.Context, number int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	q := c.Request.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
