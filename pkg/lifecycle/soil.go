package lifecycle

import (
	"errors"
	"fmt"
)

// SoilType of the parcel a culture grows on.
type SoilType string

const (
	SoilClay   SoilType = "clay"
	SoilSandy  SoilType = "sandy"
	SoilLoamy  SoilType = "loamy"
	SoilChalky SoilType = "chalky"
)

var ErrInvalidSoilType = errors.New("invalid soil type")

func SoilTypes() []SoilType {
	return []SoilType{SoilClay, SoilSandy, SoilLoamy, SoilChalky}
}

func ParseSoilType(s string) (SoilType, error) {
	st := SoilType(normalize(s))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSoilType, s)
	}
	return st, nil
}

func (s SoilType) IsValid() bool {
	switch s {
	case SoilClay, SoilSandy, SoilLoamy, SoilChalky:
		return true
	}
	return false
}

func (s SoilType) String() string { return string(s) }
