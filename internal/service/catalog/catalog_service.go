package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/gabriel-vasile/mimetype"
)

type CatalogUseCase interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	GetAirport(ctx context.Context, id int64) (*domain.AirportDetail, error)
	SaveAirport(ctx context.Context, airport *domain.Airport) error
	DeleteAirport(ctx context.Context, id int64) error

	ListRoutes(ctx context.Context) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	SaveRoute(ctx context.Context, route *domain.Route) error
	DeleteRoute(ctx context.Context, id int64) error

	ListCrew(ctx context.Context) ([]domain.Crew, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	SaveCrew(ctx context.Context, crew *domain.Crew) error
	DeleteCrew(ctx context.Context, id int64) error

	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	SaveAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	DeleteAirplaneType(ctx context.Context, id int64) error

	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	SaveAirplane(ctx context.Context, airplane *domain.Airplane) error
	DeleteAirplane(ctx context.Context, id int64) error
	UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Airplane, error)
}

// ImageStore persists uploaded files and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, folder, slug, ext string, r io.Reader) (string, error)
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".bmp": {},
}

type CatalogService struct {
	airports  repository.AirportRepository
	routes    repository.RouteRepository
	crew      repository.CrewRepository
	airplanes repository.AirplaneRepository
	images    ImageStore
	cache     flights.CacheInvalidator
}

func NewCatalogService(
	airports repository.AirportRepository,
	routes repository.RouteRepository,
	crew repository.CrewRepository,
	airplanes repository.AirplaneRepository,
	images ImageStore,
	cache flights.CacheInvalidator,
) *CatalogService {
	return &CatalogService{
		airports:  airports,
		routes:    routes,
		crew:      crew,
		airplanes: airplanes,
		images:    images,
		cache:     cache,
	}
}

func (s *CatalogService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return s.airports.List(ctx)
}

func (s *CatalogService) GetAirport(ctx context.Context, id int64) (*domain.AirportDetail, error) {
	return s.airports.GetByID(ctx, id)
}

// SaveAirport creates the airport when it has no id and updates it otherwise.
func (s *CatalogService) SaveAirport(ctx context.Context, airport *domain.Airport) error {
	if airport.ID == 0 {
		return s.airports.Create(ctx, airport)
	}
	return s.changed(ctx, s.airports.Update(ctx, airport))
}

func (s *CatalogService) DeleteAirport(ctx context.Context, id int64) error {
	return s.changed(ctx, s.airports.Delete(ctx, id))
}

func (s *CatalogService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.routes.List(ctx)
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

func (s *CatalogService) SaveRoute(ctx context.Context, route *domain.Route) error {
	var err error
	if route.ID == 0 {
		err = s.routes.Create(ctx, route)
	} else {
		err = s.changed(ctx, s.routes.Update(ctx, route))
	}
	if err != nil {
		return err
	}
	saved, err := s.routes.GetByID(ctx, route.ID)
	if err != nil {
		return err
	}
	*route = *saved
	return nil
}

func (s *CatalogService) DeleteRoute(ctx context.Context, id int64) error {
	return s.changed(ctx, s.routes.Delete(ctx, id))
}

func (s *CatalogService) ListCrew(ctx context.Context) ([]domain.Crew, error) {
	return s.crew.List(ctx)
}

func (s *CatalogService) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.crew.GetByID(ctx, id)
}

func (s *CatalogService) SaveCrew(ctx context.Context, crew *domain.Crew) error {
	if crew.ID == 0 {
		return s.crew.Create(ctx, crew)
	}
	return s.crew.Update(ctx, crew)
}

func (s *CatalogService) DeleteCrew(ctx context.Context, id int64) error {
	return s.crew.Delete(ctx, id)
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.airplanes.ListTypes(ctx)
}

func (s *CatalogService) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.airplanes.GetType(ctx, id)
}

func (s *CatalogService) SaveAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if t.ID == 0 {
		return s.airplanes.CreateType(ctx, t)
	}
	return s.airplanes.UpdateType(ctx, t)
}

// DeleteAirplaneType cascades to airplanes and their flights.
func (s *CatalogService) DeleteAirplaneType(ctx context.Context, id int64) error {
	return s.changed(ctx, s.airplanes.DeleteType(ctx, id))
}

func (s *CatalogService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return s.airplanes.List(ctx)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

// SaveAirplane reloads the airplane so the response carries its type.
func (s *CatalogService) SaveAirplane(ctx context.Context, airplane *domain.Airplane) error {
	var err error
	if airplane.ID == 0 {
		err = s.airplanes.Create(ctx, airplane)
	} else {
		err = s.changed(ctx, s.airplanes.Update(ctx, airplane))
	}
	if err != nil {
		return err
	}
	saved, err := s.airplanes.GetByID(ctx, airplane.ID)
	if err != nil {
		return err
	}
	*airplane = *saved
	return nil
}

func (s *CatalogService) DeleteAirplane(ctx context.Context, id int64) error {
	return s.changed(ctx, s.airplanes.Delete(ctx, id))
}

func (s *CatalogService) UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Airplane, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExtensions[ext]; !ok {
		return nil, invalidImage()
	}

	// The extension is only a claim; the leading bytes must be an image too.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	head = head[:n]
	if !strings.HasPrefix(mimetype.Detect(head).String(), "image/") {
		return nil, invalidImage()
	}

	airplane, err := s.airplanes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, "airplanes", airplane.Name, ext, io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return nil, err
	}
	if err := s.airplanes.SetImage(ctx, id, url); err != nil {
		return nil, err
	}
	airplane.Image = url
	return airplane, nil
}

// sniffLen matches the amount of data mimetype inspects by default.
const sniffLen = 3072

func invalidImage() error {
	return domain.NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
}

// changed drops cached flight lists after a successful write that alters them.
func (s *CatalogService) changed(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	flights.Invalidate(ctx, s.cache)
	return nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
