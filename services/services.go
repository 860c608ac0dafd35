// Package services wraps the selfserve API client with one small service per
// backend resource. Each method returns the decoded payload or the
// *selfserve.APIError produced by the pipeline.
package services

import (
	"context"

	"github.com/GenerateNU/selfserve"
	"github.com/GenerateNU/selfserve/models"
)

// Services groups every resource service around one client.
type Services struct {
	Hello    *HelloService
	Devs     *DevsService
	Users    *UsersService
	Guests   *GuestsService
	Requests *RequestsService
	Hotels   *HotelsService
}

// New builds all services over client.
func New(client *selfserve.Client) *Services {
	return &Services{
		Hello:    &HelloService{client: client},
		Devs:     &DevsService{client: client},
		Users:    &UsersService{client: client},
		Guests:   &GuestsService{client: client},
		Requests: &RequestsService{client: client},
		Hotels:   &HotelsService{client: client},
	}
}

type HelloService struct {
	client *selfserve.Client
}

// Get returns the plain-text greeting.
func (s *HelloService) Get(ctx context.Context) (string, error) {
	var out string
	_, err := s.client.Get(ctx, EndpointHello, nil, &out)
	return out, err
}

// GetName returns the greeting for name, e.g. "Yo, Alice!".
func (s *HelloService) GetName(ctx context.Context, name string) (string, error) {
	var out string
	_, err := s.client.Get(ctx, HelloName(name), nil, &out)
	return out, err
}

type DevsService struct {
	client *selfserve.Client
}

func (s *DevsService) GetMember(ctx context.Context, name string) (*models.Dev, error) {
	return get[models.Dev](ctx, s.client, DevMember(name), nil)
}

type UsersService struct {
	client *selfserve.Client
}

func (s *UsersService) Get(ctx context.Context, id string) (*models.User, error) {
	return get[models.User](ctx, s.client, User(id), nil)
}

func (s *UsersService) Create(ctx context.Context, in models.CreateUser) (*models.User, error) {
	return post[models.User](ctx, s.client, EndpointUsers, in)
}

type GuestsService struct {
	client *selfserve.Client
}

func (s *GuestsService) Create(ctx context.Context, in models.CreateGuest) (*models.Guest, error) {
	return post[models.Guest](ctx, s.client, EndpointGuests, in)
}

func (s *GuestsService) Get(ctx context.Context, id string) (*models.Guest, error) {
	return get[models.Guest](ctx, s.client, Guest(id), nil)
}

func (s *GuestsService) Update(ctx context.Context, id string, in models.UpdateGuest) (*models.Guest, error) {
	var out models.Guest
	if _, err := s.client.Put(ctx, Guest(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RequestsService struct {
	client *selfserve.Client
}

// List returns every request.
func (s *RequestsService) List(ctx context.Context) ([]models.Request, error) {
	var out []models.Request
	if _, err := s.client.Get(ctx, EndpointRequests, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RequestsService) Get(ctx context.Context, id string) (*models.Request, error) {
	return get[models.Request](ctx, s.client, Request(id), nil)
}

func (s *RequestsService) Create(ctx context.Context, in models.MakeRequest) (*models.Request, error) {
	return post[models.Request](ctx, s.client, EndpointRequest, in)
}

// Generate drafts and stores a request from free text.
func (s *RequestsService) Generate(ctx context.Context, in models.GenerateRequestInput) (*models.Request, error) {
	return post[models.Request](ctx, s.client, EndpointGenerateRequest, in)
}

type HotelsService struct {
	client *selfserve.Client
}

func (s *HotelsService) Get(ctx context.Context, id string) (*models.Hotel, error) {
	return get[models.Hotel](ctx, s.client, Hotel(id), nil)
}

func (s *HotelsService) Create(ctx context.Context, in models.CreateHotelRequest) (*models.Hotel, error) {
	return post[models.Hotel](ctx, s.client, EndpointHotel, in)
}

func get[T any](ctx context.Context, client *selfserve.Client, path string, params selfserve.Params) (*T, error) {
	var out T
	if _, err := client.Get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func post[T any](ctx context.Context, client *selfserve.Client, path string, body any) (*T, error) {
	var out T
	if _, err := client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
