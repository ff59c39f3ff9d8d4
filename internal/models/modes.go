package models

import (
	"fmt"
	"strings"
)

// PoolMode is the operating mode derived from the POOL/SPA/SPILLOVER keys.
type PoolMode int

const (
	PoolModeOff PoolMode = iota
	PoolModePool
	PoolModeSpa
	PoolModeSpillover
)

var poolModeNames = map[PoolMode]string{
	PoolModeOff:       "Off",
	PoolModePool:      "Pool",
	PoolModeSpa:       "Spa",
	PoolModeSpillover: "Spillover",
}

func (m PoolMode) String() string {
	if name, ok := poolModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PoolMode(%d)", int(m))
}

// ParsePoolMode accepts off, pool, spa or spillover in any case.
func ParsePoolMode(s string) (PoolMode, error) {
	for mode, name := range poolModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return mode, nil
		}
	}
	return PoolModeOff, fmt.Errorf("unknown pool mode %q", s)
}

// FilterMode is the filter pump speed derived from the FILTER/AUX1 keys.
type FilterMode int

const (
	FilterModeOff FilterMode = iota
	FilterModeLow
	FilterModeHigh
)

var filterModeNames = map[FilterMode]string{
	FilterModeOff:  "Off",
	FilterModeLow:  "Low",
	FilterModeHigh: "High",
}

func (m FilterMode) String() string {
	if name, ok := filterModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FilterMode(%d)", int(m))
}

// ParseFilterMode accepts off, low or high in any case.
func ParseFilterMode(s string) (FilterMode, error) {
	for mode, name := range filterModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return mode, nil
		}
	}
	return FilterModeOff, fmt.Errorf("unknown filter mode %q", s)
}
