// Package domain contains the core data types for the resort booking service.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, flow).
package domain

import (
	"strconv"
	"strings"
)

// RoomCategory identifies a bookable room type at the resort.
type RoomCategory string

const (
	RoomSingle    RoomCategory = "single"
	RoomDouble    RoomCategory = "double"
	RoomDormitory RoomCategory = "dormitory"
)

// Valid reports whether c is one of the known room categories.
func (c RoomCategory) Valid() bool {
	switch c {
	case RoomSingle, RoomDouble, RoomDormitory:
		return true
	}
	return false
}

// StayLengths are the fixed program durations, in days, a room can be booked
// for. A stay is an inclusive date range: a 7-day stay starting Jan 1 ends
// Jan 7.
var StayLengths = []int{7, 15}

// ValidStayLength reports whether days is an offered program duration.
func ValidStayLength(days int) bool {
	for _, d := range StayLengths {
		if d == days {
			return true
		}
	}
	return false
}

// PricingEntry is one cell of the room pricing matrix: the whole-rupee price
// for a given category and stay length.
type PricingEntry struct {
	Category RoomCategory `json:"category"`
	Days     int          `json:"days"`
	Price    int64        `json:"price"`
}

// PriceMatrix maps category → stay length → whole-rupee price.
// A pair that is absent resolves to 0, which the quote engine treats as
// "not currently bookable" — never as a free stay.
type PriceMatrix map[RoomCategory]map[int]int64

// Price returns the configured price for (category, days), or 0 when the
// pair is not present in the matrix.
func (m PriceMatrix) Price(category RoomCategory, days int) int64 {
	byDays, ok := m[category]
	if !ok {
		return 0
	}
	return byDays[days]
}

// Set stores price for (category, days), allocating the inner map as needed.
func (m PriceMatrix) Set(category RoomCategory, days int, price int64) {
	if m[category] == nil {
		m[category] = make(map[int]int64)
	}
	m[category][days] = price
}

// Entries flattens the matrix into a slice of PricingEntry values.
// Order is unspecified; callers that need determinism should sort.
func (m PriceMatrix) Entries() []PricingEntry {
	var out []PricingEntry
	for cat, byDays := range m {
		for days, price := range byDays {
			out = append(out, PricingEntry{Category: cat, Days: days, Price: price})
		}
	}
	return out
}

// ParsedPrice is the tagged result of parsing raw admin price input.
// Coerced is true when the input was not a usable non-negative integer and
// the value was forced to 0 instead of failing.
type ParsedPrice struct {
	Value   int64
	Coerced bool
}

// ParsePrice parses raw admin-grid input as a non-negative whole-rupee price.
// Non-numeric or negative input coerces to 0 rather than erroring. The
// pricing editor is a spreadsheet-like grid and this lenient policy is
// intentional; a zero price simply makes the pair unbookable.
func ParsePrice(raw string) ParsedPrice {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return ParsedPrice{Value: 0, Coerced: true}
	}
	return ParsedPrice{Value: n}
}
