package catalog

// ServiceCategories is the fixed category vocabulary offered when creating
// a listing.
var ServiceCategories = []string{
	"Design & Creative",
	"Development & IT",
	"Marketing & Sales",
	"Writing & Content",
	"Business Consulting",
	"Video & Animation",
	"Music & Audio",
	"Photography",
	"Data & Analytics",
	"Legal & Compliance",
}

// SampleListings is the built-in catalog used when the gateway is
// unreachable and the offline cache is empty, so the discovery page always
// has something to show.
var SampleListings = []Listing{
	{
		ID:           1,
		Title:        "Professional Logo Design",
		Seller:       "Design Studio Pro",
		Rating:       4.9,
		Reviews:      127,
		Price:        450,
		Category:     "Design & Creative",
		Description:  "Custom logo design with unlimited revisions",
		ImageURL:     "https://images.unsplash.com/photo-1626785774573-4b799315345d?w=800&h=600&fit=crop",
		DeliveryTime: "3-5 days",
	},
	{
		ID:           2,
		Title:        "Full Stack Web Development",
		Seller:       "WebCraft Inc",
		Rating:       5.0,
		Reviews:      89,
		Price:        2500,
		Category:     "Development & IT",
		Description:  "Complete web application development",
		ImageURL:     "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&h=600&fit=crop",
		DeliveryTime: "2-3 weeks",
	},
	{
		ID:           3,
		Title:        "SEO & Content Marketing",
		Seller:       "SEO Masters",
		Rating:       4.8,
		Reviews:      156,
		Price:        800,
		Category:     "Marketing & Sales",
		Description:  "Complete SEO optimization and content strategy",
		ImageURL:     "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&h=600&fit=crop",
		DeliveryTime: "1 week",
	},
	{
		ID:           4,
		Title:        "Professional Copywriting",
		Seller:       "WordSmith Co",
		Rating:       4.7,
		Reviews:      94,
		Price:        350,
		Category:     "Writing & Content",
		Description:  "Engaging copy for websites, ads, and more",
		ImageURL:     "https://images.unsplash.com/photo-1455390582262-044cdead277a?w=800&h=600&fit=crop",
		DeliveryTime: "2-4 days",
	},
	{
		ID:           5,
		Title:        "Social Media Management",
		Seller:       "Social Boost",
		Rating:       4.6,
		Reviews:      203,
		Price:        600,
		Category:     "Marketing & Sales",
		Description:  "Complete social media strategy and management",
		ImageURL:     "https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=800&h=600&fit=crop",
		DeliveryTime: "Monthly",
	},
	{
		ID:           6,
		Title:        "Mobile App Development",
		Seller:       "App Innovations",
		Rating:       4.9,
		Reviews:      67,
		Price:        5000,
		Category:     "Development & IT",
		Description:  "iOS and Android app development",
		ImageURL:     "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=800&h=600&fit=crop",
		DeliveryTime: "4-6 weeks",
	},
}
