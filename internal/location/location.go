package location

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrNoAddress        = errors.New("no address for position")
)

type Coords struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// String renders coordinates the way the portfolio card shows them.
func (c Coords) String() string {
	return fmt.Sprintf("Lat: %.2f, Lon: %.2f", c.Lat, c.Lon)
}

type Address struct {
	City    string
	Region  string
	Country string
}

func (a Address) IsZero() bool {
	return a.City == "" && a.Region == "" && a.Country == ""
}

// String formats as "city, region, country", leaving blanks for unknown parts.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s", a.City, a.Region, a.Country)
}

// Provider is the device location capability.
type Provider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (Coords, error)
	ReverseGeocode(ctx context.Context, c Coords) (Address, error)
}

// StaticProvider answers from configured values. Terminals have no positioning hardware.
type StaticProvider struct {
	Enabled  bool
	Position Coords
	Place    Address
}

func (p StaticProvider) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return p.Enabled, nil
}

func (p StaticProvider) CurrentPosition(ctx context.Context) (Coords, error) {
	if err := ctx.Err(); err != nil {
		return Coords{}, err
	}
	if !p.Enabled {
		return Coords{}, ErrPermissionDenied
	}
	return p.Position, nil
}

func (p StaticProvider) ReverseGeocode(ctx context.Context, c Coords) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	if p.Place.IsZero() {
		return Address{}, ErrNoAddress
	}
	return p.Place, nil
}

// Locate asks for permission and returns the current position.
func Locate(ctx context.Context, p Provider) (Coords, error) {
	granted, err := p.RequestPermission(ctx)
	if err != nil {
		return Coords{}, fmt.Errorf("failed to request location permission: %w", err)
	}
	if !granted {
		return Coords{}, ErrPermissionDenied
	}

	coords, err := p.CurrentPosition(ctx)
	if err != nil {
		return Coords{}, fmt.Errorf("failed to get current position: %w", err)
	}
	return coords, nil
}

// Resolve returns the formatted address of the current position.
// Callers keep their default display value on any error.
func Resolve(ctx context.Context, p Provider) (string, error) {
	coords, err := Locate(ctx, p)
	if err != nil {
		return "", err
	}

	addr, err := p.ReverseGeocode(ctx, coords)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode: %w", err)
	}
	return addr.String(), nil
}

// Distance returns the great-circle distance in kilometers (haversine).
func Distance(a, b Coords) float64 {
	const earthRadius = 6371

	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FormatDistance renders a distance for list descriptions.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm away", int(math.Round(km*1000)))
	}
	s := fmt.Sprintf("%.1f", km)
	return strings.TrimSuffix(s, ".0") + "km away"
}
