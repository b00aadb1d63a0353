package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

const (
	testTMin = 0.0
	testTMax = 100000.0
)

var testMaterial = material.New(core.NewVec3(0.5, 0.5, 0.5), 0)

func TestSphere_Hit_DistanceToSurface(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		origin core.Vec3
	}{
		{"unit sphere along z", core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 0, -5)},
		{"offset sphere", core.NewVec3(3.5, 1, 3.5), 1.0, core.NewVec3(0, 2.5, -1)},
		{"large sphere", core.NewVec3(-2, 4, 10), 3.0, core.NewVec3(1, 1, 1)},
		{"small sphere", core.NewVec3(0, 2.65, 3), 0.55, core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, testMaterial)
			direction := tt.center.Subtract(tt.origin).Normalize()
			ray := core.NewRay(tt.origin, direction)

			hitT, isHit := sphere.Hit(ray, testTMin, testTMax)
			if !isHit {
				t.Fatal("Expected hit when aimed at the center")
			}

			expected := tt.center.Subtract(tt.origin).Length() - tt.radius
			if math.Abs(hitT-expected) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expected, hitT)
			}

			// Aimed directly away from the sphere
			away := core.NewRay(tt.origin, direction.Negate())
			if awayT, isHit := sphere.Hit(away, testTMin, testTMax); isHit {
				t.Errorf("Expected miss when aimed away, got t=%f", awayT)
			}
		})
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hitT, isHit := sphere.Hit(ray, testTMin, testTMax); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hitT)
	}
}

func TestSphere_Hit_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	hitT, isHit := sphere.Hit(ray, testTMin, testTMax)
	if !isHit {
		t.Fatal("Expected hit from inside the sphere")
	}
	if math.Abs(hitT-2.0) > 1e-9 {
		t.Errorf("Expected the far root t=2, got t=%f", hitT)
	}
}

func TestSphere_Hit_StrictBounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	// Roots at t=1 and t=3
	ray := core.NewRay(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{"both roots in range", 0, 10, true, 1},
		{"near root on tMin", 1, 10, true, 3},
		{"near root below tMin", 2, 10, true, 3},
		{"far root on tMax", 1, 3, false, 0},
		{"both excluded", 3, 10, false, 0},
		{"near root on tMax", 0, 1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hitT, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.shouldHit, isHit, hitT)
			}
			if isHit && math.Abs(hitT-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hitT)
			}
		})
	}
}

func TestNearestRoot(t *testing.T) {
	tests := []struct {
		name     string
		p, q     float64
		expected float64
		ok       bool
	}{
		{"both in range picks smaller", 5, 2, 2, true},
		{"both in range picks smaller reversed", 2, 5, 2, true},
		{"only p", 4, -1, 4, true},
		{"only q", -3, 7, 7, true},
		{"neither", -3, -1, 0, false},
		{"zero excluded", 0, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nearestRoot(tt.p, tt.q, 0, 100)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("nearestRoot(%f, %f) = (%f, %t), want (%f, %t)", tt.p, tt.q, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestSphere_SurfaceAt(t *testing.T) {
	mat := material.New(core.NewVec3(0, 0, 1), 0)
	sphere := NewSphere(core.NewVec3(0, 0.5, 3), 1.0, mat)

	sp := sphere.SurfaceAt(core.NewVec3(0, 0.5, 1))
	expected := core.NewVec3(0, 0, -1)
	if sp.Normal.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected normal %v, got %v", expected, sp.Normal)
	}
	if sp.Color != mat.Ambient {
		t.Errorf("Expected color %v, got %v", mat.Ambient, sp.Color)
	}
	if sphere.Lighting() != SphereLighting {
		t.Errorf("Expected sphere lighting %v, got %v", SphereLighting, sphere.Lighting())
	}
	if math.Abs(sphere.Radius()-1.0) > 1e-12 {
		t.Errorf("Expected radius 1, got %f", sphere.Radius())
	}
}
