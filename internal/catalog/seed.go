package catalog

import "github.com/exclucatalog/exclucatalog/internal/models"

const seedImage = "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&auto=format&fit=crop&q=60"

// Seed returns the built-in catalog used when no snapshot exists yet.
func Seed() []models.Product {
	return []models.Product{
		{ID: 1, Code: "FLT-1001", Name: "Wix Filtro de Aceite", Model: "Corolla 2015-2020", Price: 12.5, Image: seedImage},
		{ID: 2, Code: "FLT-1002", Name: "Wix Filtro de Aire", Model: "Corolla 2015-2020", Price: 18.0, Image: seedImage},
		{ID: 3, Code: "BUJ-2001", Name: "NGK Bujia Iridium", Model: "Hilux 2018-2023", Price: 9.75, Discount: "10%", Image: seedImage},
		{ID: 4, Code: "AMT-3001", Name: "Monroe Amortiguador Delantero", Model: "Hilux 2018-2023", Price: 64.9, Image: seedImage},
		{ID: 5, Code: "AMT-3002", Name: "Monroe Amortiguador Trasero", Model: "Hilux 2018-2023", Price: 59.9, Image: seedImage},
		{ID: 6, Code: "COR-4001", Name: "Gates Correa de Tiempo", Model: "Spark 2012-2017", Price: 27.3, Discount: "5% - 10%", Image: seedImage},
		{ID: 7, Code: "PST-5001", Name: "Brembo Pastillas de Freno", Model: "General", Price: 33.0, Image: seedImage},
		{ID: 8, Code: "BAT-6001", Name: "Duncan Bateria 12V", Model: "General", Price: 95.0, Image: seedImage},
	}
}
