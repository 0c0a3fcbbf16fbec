package catalog

import "github.com/kailas-cloud/ratonica/internal/domain/product"

const imageHost = "https://images.unsplash.com/"

func score(v float64) *float64 { return &v }

// Fixtures returns a fresh copy of the mock listings, ordered by similarity score.
func Fixtures() []product.Product {
	return []product.Product{
		{
			ID:              "1",
			Title:           "Vintage Levi's Denim Jacket with Embroidered Flowers",
			Brand:           "Levi's",
			Description:     "Beautiful vintage Levi's jacket from the 90s with custom embroidery",
			Price:           89.99,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1591047139829-d91aecb6caea",
			ProductURL:      "https://www.etsy.com/listing/123456",
			Platform:        product.Etsy,
			Condition:       product.Good,
			SimilarityScore: score(92),
		},
		{
			ID:              "2",
			Title:           "Vintage Wrangler Denim Jacket - 80s Blue Jean Jacket",
			Brand:           "Wrangler",
			Price:           65.50,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1576871337622-98d48d1cf531",
			ProductURL:      "https://www.depop.com/products/123456",
			Platform:        product.Depop,
			Condition:       product.Good,
			SimilarityScore: score(85),
		},
		{
			ID:              "3",
			Title:           "Vintage Lee Rider Denim Jacket - Classic American Workwear",
			Brand:           "Lee",
			Price:           120.00,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1551537482-f2075a1d41f2",
			ProductURL:      "https://www.vinted.com/items/123456",
			Platform:        product.Vinted,
			Condition:       product.LikeNew,
			SimilarityScore: score(78),
		},
		{
			ID:              "4",
			Title:           "Rare 70s Denim Jacket with Custom Patches",
			Price:           150.00,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1604644401890-0bd678c83788",
			ProductURL:      "https://www.ebay.com/itm/123456",
			Platform:        product.Ebay,
			Condition:       product.Fair,
			SimilarityScore: score(72),
		},
		{
			ID:              "5",
			Title:           "Vintage Calvin Klein Denim Jacket - Y2K Style",
			Brand:           "Calvin Klein",
			Price:           95.00,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1605450081927-6b40c11c661f",
			ProductURL:      "https://www.vestiairecollective.com/item/123456",
			Platform:        product.Vestiaire,
			Condition:       product.Good,
			SimilarityScore: score(68),
		},
		{
			ID:              "6",
			Title:           "Oversized Vintage Denim Jacket with Distressed Details",
			Price:           79.99,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1608063615781-e2ef8c73d114",
			ProductURL:      "https://www.depop.com/products/654321",
			Platform:        product.Depop,
			Condition:       product.Good,
			SimilarityScore: score(65),
		},
		{
			ID:              "7",
			Title:           "Vintage Tommy Hilfiger Denim Jacket - 90s Streetwear",
			Brand:           "Tommy Hilfiger",
			Price:           110.00,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1611312449408-fcece27cdbb7",
			ProductURL:      "https://www.etsy.com/listing/654321",
			Platform:        product.Etsy,
			Condition:       product.LikeNew,
			SimilarityScore: score(63),
		},
		{
			ID:              "8",
			Title:           "Vintage Guess Denim Jacket - Retro 80s Fashion",
			Brand:           "Guess",
			Price:           88.50,
			Currency:        "USD",
			ImageURL:        imageHost + "photo-1593030103066-0093718efeb9",
			ProductURL:      "https://www.vinted.com/items/654321",
			Platform:        product.Vinted,
			Condition:       product.Good,
			SimilarityScore: score(60),
		},
	}
}
