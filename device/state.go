package device

import (
	"errors"
	"strconv"
	"strings"
)

// State is the cleaner's last reported status: the position of each
// axis and whether the clamp is engaged.
//
// The device pushes status lines of the form
// `<Idle|Pos:0.5,90,1.25|Clamp:1>` (jaw position, jaw rotation, clamp
// position) between its other output.
type State struct {
	Status      string
	JawPosition float64
	JawRotation float64
	ClampPos    float64
	Clamped     bool
}

func parsePositions(stat *State, data string) error {
	parts := strings.Split(data, ",")
	if len(parts) != 3 {
		return errors.New("invalid number of elements")
	}
	var err error
	stat.JawPosition, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return err
	}
	stat.JawRotation, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return err
	}
	stat.ClampPos, err = strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return err
	}
	return nil
}

func parseState(stat State, data string) (*State, error) {
	data = strings.TrimSpace(data)
	data = strings.TrimPrefix(data, "<")
	data = strings.TrimSuffix(data, ">")
	parts := strings.Split(data, "|")
	stat.Status = parts[0]
	for _, s := range parts[1:] {
		sParts := strings.SplitN(s, ":", 2)
		if len(sParts) != 2 {
			continue
		}
		switch sParts[0] {
		case "Pos":
			if err := parsePositions(&stat, sParts[1]); err != nil {
				return nil, err
			}
		case "Clamp":
			stat.Clamped = sParts[1] == "1"
		}
	}
	return &stat, nil
}
