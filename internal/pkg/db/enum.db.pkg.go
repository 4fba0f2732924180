package database

import "strings"

/*----------- DirectionEnum -----------*/

type DirectionEnum string

const (
	ASC  DirectionEnum = "asc"
	DESC DirectionEnum = "desc"
)

func (e DirectionEnum) ToString() string {
	switch e {
	case ASC:
		return "asc"
	case DESC:
		return "desc"
	}
	return ""
}

func (e DirectionEnum) IsValid() bool {
	switch e {
	case ASC, DESC:
		return true
	}
	return false
}

// ParseDirection falls back to fallback for empty or unknown input.
func ParseDirection(s string, fallback DirectionEnum) DirectionEnum {
	d := DirectionEnum(strings.ToLower(strings.TrimSpace(s)))
	if d.IsValid() {
		return d
	}
	return fallback
}

/*----------- DriverEnum -----------*/

type DriverEnum string

const (
	POSTGRES DriverEnum = "postgres"
	MYSQL    DriverEnum = "mysql"
	// MEMORY skips the database and serves repositories from process memory.
	MEMORY DriverEnum = "memory"
)

func (e DriverEnum) ToString() string {
	switch e {
	case POSTGRES:
		return "postgres"
	case MYSQL:
		return "mysql"
	case MEMORY:
		return "memory"
	default:
		return ""
	}
}

func (e DriverEnum) IsValid() bool {
	switch e {
	case POSTGRES, MYSQL, MEMORY:
		return true
	}
	return false
}
