package catalogs

import "testing"

// TestCatalog returns a small catalog spanning old and current years.
//
//	2023 A: Bone Shaker, Twin Mill (TH)
//	2024 B: Deora II (TH), Datsun 510 (STH), Datsun 510 variant (dud)
//	2024 C: Rodger Dodger
//	2025 A: Mazda RX-7, Bone Shaker, Twin Mill
//	2026 A: no cars
func TestCatalog(t testing.TB) Catalog {
	t.Helper()
	return Catalog{
		"2023": {Cases: []Case{{
			Letter: "A",
			TH:     &HuntRef{HWNumber: "44", Image: "2023-twin-mill.png", Name: "Twin Mill"},
			Cars: []Car{
				{Name: "Bone Shaker", Image: "2023-bone-shaker.png", Series: "HW Dream Garage", SeriesNumber: "2/10", HWNumber: "12", Color: "Black"},
				{Name: "Twin Mill", Image: "2023-twin-mill.png", Series: "HW Art Cars", SeriesNumber: "5/10", HWNumber: "44", Color: "Red"},
			},
		}}},
		"2024": {Cases: []Case{
			{
				Letter: "B",
				TH:     &HuntRef{HWNumber: "30", Image: "2024-deora.png"},
				STH:    &HuntRef{HWNumber: "5", Image: "2024-sth.png", Name: "Datsun 510"},
				Cars: []Car{
					{Name: "Deora II", Image: "2024-deora.png", Series: "HW Surf", SeriesNumber: "3/5", HWNumber: "30", Color: "Blue"},
					{Name: "Datsun 510", Image: "2024-sth.png", Series: "HW J-Imports", SeriesNumber: "1/10", HWNumber: "5", Color: "Spectraflame Purple"},
					{Name: "Datsun 510", Image: "2024-datsun-variant.png", Series: "HW J-Imports", SeriesNumber: "#1", HWNumber: "5", Color: "White"},
				},
			},
			{
				Letter: "C",
				Cars: []Car{
					{Name: "Rodger Dodger", Image: "2024-rodger.png", Series: "Muscle Mania", SeriesNumber: "4/10", HWNumber: "101", Color: "Orange"},
				},
			},
		}},
		"2025": {Cases: []Case{{
			Letter: "A",
			Cars: []Car{
				{Name: "Mazda RX-7", Image: "2025-rx7.png", Series: "HW J-Imports", SeriesNumber: "7/10", HWNumber: "150", Color: "White"},
				{Name: "Bone Shaker", Image: "2025-bone-shaker.png", Series: "HW Dream Garage", SeriesNumber: "1/10", HWNumber: "3", Color: "Green"},
				{Name: "Twin Mill", Image: "2025-twin-mill.png", Series: "HW Art Cars", SeriesNumber: "N/A", HWNumber: "87", Color: "Red"},
			},
		}}},
		"2026": {Cases: []Case{{Letter: "A"}}},
	}
}
