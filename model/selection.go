package model

import "strconv"

// Selection is a nullable process id.
type Selection struct {
	PID   int32
	Valid bool
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// Select returns a selection holding pid.
func Select(pid int32) Selection {
	return Selection{PID: pid, Valid: true}
}

func (s Selection) String() string {
	if !s.Valid {
		return "None"
	}
	return strconv.Itoa(int(s.PID))
}
