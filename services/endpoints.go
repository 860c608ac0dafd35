package services

import "net/url"

// Backend route paths, relative to the configured base URL.
const (
	EndpointHealth          = "/health"
	EndpointHello           = "/api/v1/hello"
	EndpointUsers           = "/api/v1/users"
	EndpointGuests          = "/api/v1/guests"
	EndpointRequest         = "/api/v1/request"
	EndpointRequests        = "/api/v1/requests"
	EndpointGenerateRequest = "/api/v1/request/generate"
	EndpointHotel           = "/api/v1/hotel"
	EndpointHotels          = "/api/v1/hotels"
	EndpointDevs            = "/api/v1/devs"
)

// HelloName is the personalized greeting route.
func HelloName(name string) string { return EndpointHello + "/" + url.PathEscape(name) }

// DevMember is the route for one team member.
func DevMember(name string) string { return EndpointDevs + "/" + url.PathEscape(name) }

func User(id string) string    { return EndpointUsers + "/" + url.PathEscape(id) }
func Guest(id string) string   { return EndpointGuests + "/" + url.PathEscape(id) }
func Request(id string) string { return EndpointRequest + "/" + url.PathEscape(id) }
func Hotel(id string) string   { return EndpointHotels + "/" + url.PathEscape(id) }
