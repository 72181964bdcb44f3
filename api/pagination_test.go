package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaginator_page(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    domain.Page
		number  int
		wantErr bool
	}{
		{name: "default", query: "", want: domain.Page{Limit: 10}, number: 1},
		{name: "third", query: "?page=3", want: domain.Page{Limit: 10, Offset: 20}, number: 3},
		{name: "zero", query: "?page=0", wantErr: true},
		{name: "not a number", query: "?page=last", wantErr: true},
		{name: "offset overflow", query: "?page=" + strconv.Itoa(int(^uint(0)>>1)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "/api/flights/"+tt.query, "")

			page, number, err := NewPaginator(10).page(c)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, page)
			assert.Equal(t, tt.number, number)
		})
	}
}

func TestFlightHandler_list_HugePage(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, NewPaginator(10))

	c, w := newTestContext(http.MethodGet, "/api/flights/?page=9223372036854775807", "")

	handler.list(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}
