package catalogs

import "strings"

// Case is a batch of cars released together, identified by Letter
// within a year.
type Case struct {
	Letter string   `json:"letter" yaml:"letter"`
	TH     *HuntRef `json:"th,omitempty" yaml:"th,omitempty"`
	STH    *HuntRef `json:"sth,omitempty" yaml:"sth,omitempty"`
	Cars   []Car    `json:"cars" yaml:"cars"`
}

// IsTH reports whether car is the case's Treasure Hunt.
func (c *Case) IsTH(car Car) bool {
	return c != nil && c.TH.Matches(car)
}

// IsSTH reports whether car is the case's Super Treasure Hunt.
func (c *Case) IsSTH(car Car) bool {
	return c != nil && c.STH.Matches(car)
}

// IsDud reports whether car shares the Super Treasure Hunt's number
// but is a different casting.
func (c *Case) IsDud(car Car) bool {
	if c == nil || c.STH == nil {
		return false
	}
	return c.STH.SharesNumber(car) && car.Image != c.STH.Image
}

// Contains reports whether a car with the given image is in the case.
func (c *Case) Contains(image string) bool {
	if c == nil {
		return false
	}
	for _, car := range c.Cars {
		if car.Image == image {
			return true
		}
	}
	return false
}

// Car returns the car with the given image.
func (c *Case) Car(image string) (Car, bool) {
	if c == nil {
		return Car{}, false
	}
	for _, car := range c.Cars {
		if car.Image == image {
			return car, true
		}
	}
	return Car{}, false
}

// HasLetter compares the case letter case-insensitively.
func (c *Case) HasLetter(letter string) bool {
	return c != nil && strings.EqualFold(c.Letter, letter)
}
