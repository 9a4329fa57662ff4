// Package rightmove provides the search-parameter model and HTML extraction
// for Rightmove listing pages.
package rightmove

import (
	"net/url"
	"strconv"
)

// SearchURL is the search endpoint for rental listings.
const SearchURL = "https://www.rightmove.co.uk/property-to-rent/find.html"

// PropertyURL is the base URL for individual listing detail pages.
const PropertyURL = "https://www.rightmove.co.uk/properties/"

// PageSize is the number of listings per search-results page. Pagination
// offsets advance by this amount.
const PageSize = 24

// defaultUserAgent mirrors the header the site accepts for plain fetches.
const defaultUserAgent = "curl/7.64.1"

// RentParams is the flat filter mapping for one rental search. A RentParams
// value is constructed per query and not mutated afterwards. Unset filters
// serialize as empty strings: the target site does not treat an omitted
// parameter and an empty one as equivalent.
type RentParams struct {
	SearchType             string
	LocationIdentifier     string
	InsID                  string
	Index                  int
	Radius                 string
	MinPrice               string
	MaxPrice               string
	MinBedrooms            string
	MaxBedrooms            string
	DisplayPropertyType    string
	MaxDaysSinceAdded      string
	SortByPriceDescending  string
	PrimaryPropertyType    string
	SecondaryPropertyType  string
	OldDisplayPropertyType string
	OldPrimaryPropertyType string
	LetType                string
	LetFurnishType         string
	HouseFlatShare         string
}

// NewRentParams returns rental search parameters with the site's default
// search type, location and radius, and every filter unset.
func NewRentParams() RentParams {
	return RentParams{
		SearchType:         "RENT",
		LocationIdentifier: "REGION^87490",
		InsID:              "1",
		Radius:             "0.0",
	}
}

// WithIndex returns a copy of p positioned at the given pagination offset.
func (p RentParams) WithIndex(index int) RentParams {
	p.Index = index
	return p
}

// Values serializes the parameters to query-string form. Every key is always
// present; unset filters appear as empty strings.
func (p RentParams) Values() url.Values {
	return url.Values{
		"searchType":                   {p.SearchType},
		"locationIdentifier":           {p.LocationIdentifier},
		"insId":                        {p.InsID},
		"index":                        {strconv.Itoa(p.Index)},
		"radius":                       {p.Radius},
		"minPrice":                     {p.MinPrice},
		"maxPrice":                     {p.MaxPrice},
		"minBedrooms":                  {p.MinBedrooms},
		"maxBedrooms":                  {p.MaxBedrooms},
		"displayPropertyType":          {p.DisplayPropertyType},
		"maxDaysSinceAdded":            {p.MaxDaysSinceAdded},
		"sortByPriceDescending":        {p.SortByPriceDescending},
		"primaryDisplayPropertyType":   {p.PrimaryPropertyType},
		"secondaryDisplayPropertyType": {p.SecondaryPropertyType},
		"oldDisplayPropertyType":       {p.OldDisplayPropertyType},
		"oldPrimaryDisplayPropertyType": {
			p.OldPrimaryPropertyType,
		},
		"letType":        {p.LetType},
		"letFurnishType": {p.LetFurnishType},
		"houseFlatShare": {p.HouseFlatShare},
	}
}

// Headers returns the request headers used for every Rightmove fetch.
func Headers() map[string]string {
	return map[string]string{"User-Agent": defaultUserAgent}
}
