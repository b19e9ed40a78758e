package eval

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCoresetCost_WeightedScenario(t *testing.T) {
	// coreset rows: (weight, x, y) = (1,0,0) and (2,10,10), single center at origin
	coreset := &WeightedPoints{
		Weights: []float64{1, 2},
		Points:  mat.NewDense(2, 2, []float64{0, 0, 10, 10}),
	}
	centers := mat.NewDense(1, 2, []float64{0, 0})

	// squared distances are {0, 200}; weighted sum = 1*0 + 2*200
	got := CoresetCost(coreset, centers)
	if got != 400 {
		t.Errorf("coreset cost = %v, want 400", got)
	}
}

func TestRealCost_UnweightedScenario(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{0, 0, 3, 4})
	centers := mat.NewDense(1, 2, []float64{0, 0})

	// squared distances are {0, 25}; unweighted sum = 25
	got := RealCost(data, centers)
	if got != 25 {
		t.Errorf("real cost = %v, want 25", got)
	}
}

func TestRealCost_PicksNearestCenter(t *testing.T) {
	data := mat.NewDense(1, 2, []float64{9, 0})
	centers := mat.NewDense(2, 2, []float64{
		0, 0,
		10, 0,
	})

	// nearest center is (10,0) at squared distance 1, not (0,0) at 81
	if got := RealCost(data, centers); got != 1 {
		t.Errorf("real cost = %v, want 1", got)
	}
}

func TestCosts_NonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n, k, d := 1+rng.Intn(30), 1+rng.Intn(5), 1+rng.Intn(4)
		points := make([]float64, n*d)
		for i := range points {
			points[i] = rng.NormFloat64() * 100
		}
		centerVals := make([]float64, k*d)
		for i := range centerVals {
			centerVals[i] = rng.NormFloat64() * 100
		}
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = rng.Float64() * 10
		}
		data := mat.NewDense(n, d, points)
		centers := mat.NewDense(k, d, centerVals)

		if got := RealCost(data, centers); got < 0 {
			t.Fatalf("trial %d: real cost %v < 0", trial, got)
		}
		coreset := &WeightedPoints{Weights: weights, Points: data}
		if got := CoresetCost(coreset, centers); got < 0 {
			t.Fatalf("trial %d: coreset cost %v < 0", trial, got)
		}
	}
}

func TestDistortion_Scenario(t *testing.T) {
	got, err := Distortion(400, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4.0 {
		t.Errorf("distortion = %v, want 4.0", got)
	}
}

func TestDistortion_SymmetricAndAtLeastOne(t *testing.T) {
	cases := [][2]float64{
		{400, 100},
		{100, 400},
		{1, 1},
		{0.25, 7.5},
		{1e-9, 1e9},
	}
	for _, c := range cases {
		ab, err := Distortion(c[0], c[1])
		if err != nil {
			t.Fatalf("Distortion(%v, %v): %v", c[0], c[1], err)
		}
		ba, err := Distortion(c[1], c[0])
		if err != nil {
			t.Fatalf("Distortion(%v, %v): %v", c[1], c[0], err)
		}
		if ab != ba {
			t.Errorf("Distortion(%v,%v)=%v != Distortion(%v,%v)=%v", c[0], c[1], ab, c[1], c[0], ba)
		}
		if ab < 1 {
			t.Errorf("Distortion(%v,%v)=%v < 1", c[0], c[1], ab)
		}
	}
}

func TestDistortion_ZeroCostIsError(t *testing.T) {
	for _, c := range [][2]float64{{0, 100}, {100, 0}, {0, 0}} {
		if _, err := Distortion(c[0], c[1]); !errors.Is(err, ErrZeroCost) {
			t.Errorf("Distortion(%v,%v): got err %v, want ErrZeroCost", c[0], c[1], err)
		}
	}
}

func TestCostFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), CoresetCostFileName)
	if err := WriteCost(path, 400); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCost(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != 400 {
		t.Errorf("read cost = %v, want 400", got)
	}
}
