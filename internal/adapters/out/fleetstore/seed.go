package fleetstore

import (
	"dispatch/internal/core/domain/model/fleet"
	"dispatch/internal/core/domain/model/kernel"
)

// ZoneBaseMinutes returns the base travel estimate per Hyderabad delivery
// zone, in minutes. Zones outside this table fall back to the
// calculator's default.
func ZoneBaseMinutes() map[kernel.Zone]int {
	return map[kernel.Zone]int{
		"Banjara Hills": 15,
		"Gachibowli":    20,
		"Kukatpally":    25,
		"Hitech City":   20,
		"Jubilee Hills": 15,
		"Secunderabad":  25,
		"Kondapur":      20,
		"Madhapur":      20,
	}
}

type storeSeed struct {
	id             string
	name           string
	brand          string
	address        string
	phone          string
	operatingHours string
	zone           kernel.Zone
	lat, lng       float64
}

type courierSeed struct {
	id          string
	name        string
	phone       string
	vehicleType string
	rating      float64
	zone        kernel.Zone
	lat, lng    float64
}

func storeSeeds() []storeSeed {
	return []storeSeed{
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0001", name: "StyleHub Banjara",
			brand: "StyleHub", address: "Road No 12, Banjara Hills", phone: "+91 40 2335 0001",
			operatingHours: "10:00 AM - 9:00 PM", zone: "Banjara Hills", lat: 17.4108, lng: 78.4294,
		},
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0002", name: "TrendMart Gachibowli",
			brand: "TrendMart", address: "DLF Cyber City, Gachibowli", phone: "+91 40 2335 0002",
			operatingHours: "11:00 AM - 10:00 PM", zone: "Gachibowli", lat: 17.4435, lng: 78.3479,
		},
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0003", name: "UrbanWear Kukatpally",
			brand: "UrbanWear", address: "KPHB Phase 3, Kukatpally", phone: "+91 40 2335 0003",
			operatingHours: "10:30 AM - 9:30 PM", zone: "Kukatpally", lat: 17.4849, lng: 78.3897,
		},
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0004", name: "StyleHub Hitech",
			brand: "StyleHub", address: "Cyber Towers, Hitech City", phone: "+91 40 2335 0004",
			operatingHours: "10:00 AM - 9:00 PM", zone: "Hitech City", lat: 17.4504, lng: 78.3809,
		},
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0005", name: "TrendMart Jubilee",
			brand: "TrendMart", address: "Road No 36, Jubilee Hills", phone: "+91 40 2335 0005",
			operatingHours: "11:00 AM - 10:00 PM", zone: "Jubilee Hills", lat: 17.4326, lng: 78.4071,
		},
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0006", name: "UrbanWear Secunderabad",
			brand: "UrbanWear", address: "MG Road, Secunderabad", phone: "+91 40 2335 0006",
			operatingHours: "10:00 AM - 9:00 PM", zone: "Secunderabad", lat: 17.4399, lng: 78.4983,
		},
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0007", name: "StyleHub Kondapur",
			brand: "StyleHub", address: "Botanical Garden Road, Kondapur", phone: "+91 40 2335 0007",
			operatingHours: "10:00 AM - 9:00 PM", zone: "Kondapur", lat: 17.4622, lng: 78.3568,
		},
		{
			id: "5f3c7b1a-8d02-4d6b-9e5a-1c2c1a6f0008", name: "TrendMart Madhapur",
			brand: "TrendMart", address: "Ayyappa Society, Madhapur", phone: "+91 40 2335 0008",
			operatingHours: "11:00 AM - 10:00 PM", zone: "Madhapur", lat: 17.4483, lng: 78.3915,
		},
	}
}

func courierSeeds() []courierSeed {
	return []courierSeed{
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0001", name: "Rajesh Kumar",
			phone: "+91 98765 43220", vehicleType: "bike", rating: 4.8,
			zone: "Banjara Hills", lat: 17.4065, lng: 78.4772,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0002", name: "Priya Sharma",
			phone: "+91 98765 43221", vehicleType: "scooter", rating: 4.9,
			zone: "Gachibowli", lat: 17.4399, lng: 78.3481,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0003", name: "Amit Singh",
			phone: "+91 98765 43222", vehicleType: "bike", rating: 4.7,
			zone: "Kukatpally", lat: 17.4849, lng: 78.3897,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0004", name: "Sneha Reddy",
			phone: "+91 98765 43223", vehicleType: "scooter", rating: 4.6,
			zone: "Hitech City", lat: 17.4504, lng: 78.3809,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0005", name: "Vikram Rao",
			phone: "+91 98765 43224", vehicleType: "bike", rating: 4.5,
			zone: "Jubilee Hills", lat: 17.4326, lng: 78.4071,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0006", name: "Lakshmi Devi",
			phone: "+91 98765 43225", vehicleType: "scooter", rating: 4.8,
			zone: "Secunderabad", lat: 17.4399, lng: 78.4983,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0007", name: "Arjun Nair",
			phone: "+91 98765 43226", vehicleType: "bike", rating: 4.4,
			zone: "Kondapur", lat: 17.4622, lng: 78.3568,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0008", name: "Kavya Iyer",
			phone: "+91 98765 43227", vehicleType: "scooter", rating: 4.9,
			zone: "Madhapur", lat: 17.4483, lng: 78.3915,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0009", name: "Suresh Babu",
			phone: "+91 98765 43228", vehicleType: "bike", rating: 4.3,
			zone: "Banjara Hills", lat: 17.4121, lng: 78.4340,
		},
		{
			id: "9a6e2d4c-3b15-4f7a-8c1d-2e4f5a6b0010", name: "Meera Joshi",
			phone: "+91 98765 43229", vehicleType: "scooter", rating: 4.7,
			zone: "Gachibowli", lat: 17.4410, lng: 78.3520,
		},
	}
}

// SeedStores builds the Hyderabad partner store directory.
func SeedStores() ([]*fleet.Store, error) {
	seeds := storeSeeds()
	stores := make([]*fleet.Store, 0, len(seeds))
	for _, seed := range seeds {
		id, err := kernel.UUIDFromString(seed.id)
		if err != nil {
			return nil, err
		}

		location, err := kernel.NewGeoPoint(seed.lat, seed.lng)
		if err != nil {
			return nil, err
		}

		store, err := fleet.NewStore(
			id, seed.name, seed.brand, seed.address, seed.phone,
			seed.operatingHours, seed.zone, location)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, nil
}

// SeedCouriers builds the starting courier fleet, everyone available.
func SeedCouriers() ([]*fleet.Courier, error) {
	seeds := courierSeeds()
	couriers := make([]*fleet.Courier, 0, len(seeds))
	for _, seed := range seeds {
		id, err := kernel.UUIDFromString(seed.id)
		if err != nil {
			return nil, err
		}

		location, err := kernel.NewGeoPoint(seed.lat, seed.lng)
		if err != nil {
			return nil, err
		}

		courier, err := fleet.NewCourier(
			id, seed.name, seed.phone, seed.vehicleType, seed.rating,
			seed.zone, location)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, courier)
	}
	return couriers, nil
}
