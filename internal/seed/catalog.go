// Package seed holds the demo catalog loaded by POST /api/initialize-data.
package seed

import (
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/google/uuid"
)

const (
	imgPlateCarrier = "https://images.unsplash.com/photo-1704278483976-9cca15325bc0?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2Nzh8MHwxfHNlYXJjaHwzfHx0YWN0aWNhbCUyMGdlYXJ8ZW58MHx8fHwxNzU3Mzc1OTk5fDA&ixlib=rb-4.1.0&q=85"
	imgBoots        = "https://images.unsplash.com/photo-1705564667318-923901fb916a?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2Nzh8MHwxfHNlYXJjaHwyfHx0YWN0aWNhbCUyMGdlYXJ8ZW58MHx8fHwxNzU3Mzc1OTk5fDA&ixlib=rb-4.1.0&q=85"
	imgBackpack     = "https://images.unsplash.com/photo-1714384716870-6d6322bf5a7f?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2Nzh8MHwxfHNlYXJjaHwxfHx0YWN0aWNhbCUyMGdlYXJ8ZW58MHx8fHwxNzU3Mzc1OTk5fDA&ixlib=rb-4.1.0&q=85"
	imgRedDot       = "https://images.unsplash.com/photo-1704278483831-c3939b1b041b?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2Nzh8MHwxfHNlYXJjaHw0fHx0YWN0aWNhbCUyMGdlYXJ8ZW58MHx8fHwxNzU3Mzc1OTk5fDA&ixlib=rb-4.1.0&q=85"
	imgWeapons      = "https://images.pexels.com/photos/78783/submachine-gun-rifle-automatic-weapon-weapon-78783.jpeg"
	imgTraining     = "https://images.unsplash.com/photo-1637252166739-b47f8875f304?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDQ2NDJ8MHwxfHNlYXJjaHwxfHxtaWxpdGFyeSUyMGVxdWlwbWVudHxlbnwwfHx8fDE3NTczNzYwMDd8MA&ixlib=rb-4.1.0&q=85"
	imgUniform      = "https://images.pexels.com/photos/33812346/pexels-photo-33812346.jpeg"
	imgHelmet       = "https://images.pexels.com/photos/33819675/pexels-photo-33819675.jpeg"
	imgKneePads     = "https://images.pexels.com/photos/33759979/pexels-photo-33759979.jpeg"
	imgNightVision  = "https://images.unsplash.com/photo-1549563793-ae7c90155169?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDQ2NDJ8MHwxfHNlYXJjaHw0fHxtaWxpdGFyeSUyMGVxdWlwbWVudHxlbnwwfHx8fDE3NTczNjAwMDd8MA&ixlib=rb-4.1.0&q=85"
)

const (
	CategoryBodyArmor = "Body Armor & Protection"
	CategoryApparel   = "Tactical Apparel"
	CategoryGear      = "Tactical Gear & Equipment"
	CategoryOptics    = "Optics & Scopes"
	CategoryWeapons   = "Weapons & Accessories"
	CategoryTraining  = "Training & Simulation"
)

// Catalog is a freshly generated copy of the demo data.
type Catalog struct {
	Categories []models.Category
	Brands     []models.Brand
	Products   []models.Product
}

// Build generates the demo catalog with new ids. Products get increasing
// created_at values starting at now, in listing order.
func Build(now time.Time) Catalog {
	return Catalog{
		Categories: categories(),
		Brands:     brands(),
		Products:   products(now),
	}
}

func categories() []models.Category {
	rows := []models.Category{
		{Name: CategoryBodyArmor, Slug: "body-armor", Description: "Professional body armor, plates, and protective gear", ImageURL: imgPlateCarrier},
		{Name: CategoryApparel, Slug: "tactical-apparel", Description: "Uniforms, boots, gloves, and tactical clothing", ImageURL: imgBoots},
		{Name: CategoryGear, Slug: "tactical-gear", Description: "Backpacks, pouches, holsters, and tactical accessories", ImageURL: imgBackpack},
		{Name: CategoryOptics, Slug: "optics", Description: "Red dots, scopes, night vision, and optical equipment", ImageURL: imgRedDot},
		{Name: CategoryWeapons, Slug: "weapons", Description: "Firearms, magazines, and weapon accessories", ImageURL: imgWeapons},
		{Name: CategoryTraining, Slug: "training", Description: "Training equipment and simulation gear", ImageURL: imgTraining},
	}
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}
	return rows
}

func brands() []models.Brand {
	rows := []models.Brand{
		{Name: "5.11 Tactical", LogoURL: "https://via.placeholder.com/150x60/1a1a1a/ffffff?text=5.11", Description: "Professional tactical gear and apparel"},
		{Name: "Blackhawk", LogoURL: "https://via.placeholder.com/150x60/000000/ffffff?text=BLACKHAWK", Description: "Military and law enforcement equipment"},
		{Name: "Crye Precision", LogoURL: "https://via.placeholder.com/150x60/2d2d2d/ffffff?text=CRYE", Description: "Advanced combat systems and gear"},
		{Name: "Oakley SI", LogoURL: "https://via.placeholder.com/150x60/1a1a1a/ffffff?text=OAKLEY", Description: "Standard Issue tactical eyewear and gear"},
		{Name: "Condor Outdoor", LogoURL: "https://via.placeholder.com/150x60/0f0f0f/ffffff?text=CONDOR", Description: "Tactical gear and outdoor equipment"},
		{Name: "Ops-Core", LogoURL: "https://via.placeholder.com/150x60/333333/ffffff?text=OPS-CORE", Description: "Advanced helmet and protection systems"},
	}
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}
	return rows
}

func price(v float64) *float64 { return &v }

func text(v string) *string { return &v }

func products(now time.Time) []models.Product {
	rows := []models.Product{
		{
			Name:          "Tactical Plate Carrier Vest",
			Description:   "Professional-grade plate carrier with MOLLE webbing system. Designed for military and law enforcement use.",
			Price:         299.99,
			OriginalPrice: price(399.99),
			Category:      CategoryBodyArmor,
			Subcategory:   "Plate Carriers",
			Brand:         "5.11 Tactical",
			ImageURL:      imgPlateCarrier,
			Rating:        4.8,
			ReviewCount:   156,
			StockQuantity: 25,
			Features:      []string{"MOLLE Compatible", "Adjustable Shoulder Straps", "Quick Release System", "Drag Handle"},
			Tags:          []string{"tactical", "military", "law-enforcement", "protection"},
			Specifications: map[string]string{
				"Material": "1000D Cordura",
				"Weight":   "2.1 lbs",
				"Size":     "One Size Fits Most",
			},
			Weight: text("2.1 lbs"),
		},
		{
			Name:          "Combat Tactical Boots",
			Description:   "Durable tactical boots designed for extreme conditions. Waterproof and slip-resistant.",
			Price:         189.99,
			Category:      CategoryApparel,
			Subcategory:   "Boots",
			Brand:         "5.11 Tactical",
			ImageURL:      imgBoots,
			Rating:        4.6,
			ReviewCount:   89,
			StockQuantity: 50,
			Features:      []string{"Waterproof", "Slip-Resistant Sole", "Breathable Lining", "Reinforced Toe"},
			Tags:          []string{"boots", "tactical", "waterproof", "military"},
			Specifications: map[string]string{
				"Material": "Full-grain leather",
				"Height":   "8 inches",
				"Weight":   "2.5 lbs per pair",
			},
		},
		{
			Name:          "Tactical Assault Backpack",
			Description:   "3-day assault pack with multiple compartments and MOLLE attachment points.",
			Price:         129.99,
			OriginalPrice: price(169.99),
			Category:      CategoryGear,
			Subcategory:   "Backpacks",
			Brand:         "Blackhawk",
			ImageURL:      imgBackpack,
			Rating:        4.7,
			ReviewCount:   234,
			StockQuantity: 15,
			Features:      []string{"40L Capacity", "MOLLE Compatible", "Hydration Ready", "Reinforced Bottom"},
			Tags:          []string{"backpack", "tactical", "molle", "assault-pack"},
			Specifications: map[string]string{
				"Capacity":   "40L",
				"Material":   "600D Polyester",
				"Dimensions": "19x13x8 inches",
			},
		},
		{
			Name:          "Red Dot Sight Optic",
			Description:   "Professional red dot sight with unlimited eye relief and parallax-free performance.",
			Price:         449.99,
			Category:      CategoryOptics,
			Subcategory:   "Red Dot Sights",
			Brand:         "Ops-Core",
			ImageURL:      imgRedDot,
			Rating:        4.9,
			ReviewCount:   67,
			StockQuantity: 8,
			Features:      []string{"Parallax Free", "Unlimited Eye Relief", "Shockproof", "Waterproof"},
			Tags:          []string{"optics", "red-dot", "tactical", "precision"},
			IsRestricted:  true,
			Specifications: map[string]string{
				"Battery Life": "50,000 hours",
				"Weight":       "0.8 lbs",
				"Mount":        "Picatinny Rail",
			},
		},
		{
			Name:          "Tactical Combat Uniform Set",
			Description:   "Complete ACU uniform set with reinforced knees and elbows. Flame resistant fabric.",
			Price:         89.99,
			Category:      CategoryApparel,
			Subcategory:   "Uniforms",
			Brand:         "Crye Precision",
			ImageURL:      imgUniform,
			Rating:        4.5,
			ReviewCount:   178,
			StockQuantity: 35,
			Features:      []string{"Flame Resistant", "Reinforced Knees", "Multiple Pockets", "Adjustable Cuffs"},
			Tags:          []string{"uniform", "tactical", "flame-resistant", "combat"},
			Specifications: map[string]string{
				"Material": "50/50 NYCO",
				"Colors":   "Multicam, OCP",
				"Sizes":    "XS-3XL",
			},
		},
		{
			Name:          "Ballistic Helmet System",
			Description:   "Advanced combat helmet with NVG mount and accessory rails. NIJ Level IIIA protection.",
			Price:         899.99,
			Category:      CategoryBodyArmor,
			Subcategory:   "Helmets",
			Brand:         "Ops-Core",
			ImageURL:      imgHelmet,
			Rating:        4.9,
			ReviewCount:   45,
			StockQuantity: 5,
			Features:      []string{"NIJ Level IIIA", "NVG Mount", "Accessory Rails", "Comfort Padding"},
			Tags:          []string{"helmet", "ballistic", "protection", "tactical"},
			IsRestricted:  true,
			Specifications: map[string]string{
				"Protection Level": "NIJ Level IIIA",
				"Weight":           "3.2 lbs",
				"Shell":            "Carbon Fiber",
			},
		},
		{
			Name:          "Tactical Knee Pads",
			Description:   "Professional knee protection for tactical operations. Comfortable and durable.",
			Price:         39.99,
			Category:      CategoryBodyArmor,
			Subcategory:   "Protective Gear",
			Brand:         "Blackhawk",
			ImageURL:      imgKneePads,
			Rating:        4.4,
			ReviewCount:   312,
			StockQuantity: 100,
			Features:      []string{"Adjustable Straps", "Non-slip Design", "Durable Padding", "Lightweight"},
			Tags:          []string{"knee-pads", "protection", "tactical", "gear"},
			Specifications: map[string]string{
				"Material": "Neoprene & Nylon",
				"Weight":   "0.8 lbs",
				"Size":     "Adjustable",
			},
		},
		{
			Name:          "Night Vision Monocular",
			Description:   "Gen 3 night vision monocular for tactical operations. High-resolution imaging.",
			Price:         2499.99,
			Category:      CategoryOptics,
			Subcategory:   "Night Vision",
			Brand:         "Ops-Core",
			ImageURL:      imgNightVision,
			Rating:        4.8,
			ReviewCount:   23,
			StockQuantity: 3,
			Features:      []string{"Gen 3 Tube", "Auto-Gated", "High Resolution", "Durable Housing"},
			Tags:          []string{"night-vision", "optics", "tactical", "surveillance"},
			IsRestricted:  true,
			Specifications: map[string]string{
				"Generation": "Gen 3",
				"Resolution": "64 lp/mm",
				"Weight":     "1.2 lbs",
			},
		},
	}

	for i := range rows {
		rows[i].ID = uuid.NewString()
		rows[i].InStock = true
		rows[i].GalleryImages = []string{}
		rows[i].CreatedAt = now.Add(time.Duration(i) * time.Second)
	}
	return rows
}
