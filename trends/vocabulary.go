package trends

// artTechTerms is the controlled tagging vocabulary. Chunks are tagged with
// every term that appears in their text, matched case-insensitively as a
// substring. The list is the fixed analysis vocabulary, not user-extensible.
var artTechTerms = []string{
	"artificial intelligence", "machine learning", "computer vision",
	"robotics", "augmented reality", "virtual reality", "AR", "VR",
	"AI", "ML", "algorithm", "software", "hardware", "sensor",
	"interface", "interaction", "digital", "computational",
	"automation", "data", "neural network", "deep learning",
	"computer graphics", "3D printing", "laser cutting", "CNC",
	"microcontroller", "Arduino", "Raspberry Pi", "IoT",
	"blockchain", "NFT", "cryptocurrency", "haptic",
	"projection", "mapping", "tracking", "recognition",
	"generation", "synthesis", "art", "artist", "artwork",
	"exhibition", "gallery", "museum", "installation",
	"sculpture", "painting", "drawing", "photography",
	"video", "performance", "creative", "aesthetic",
	"visual", "artistic", "design", "craft", "culture",
	"heritage", "collection", "curator", "artistic practice",
	"contemporary art", "digital art", "media art",
	"new media", "interactive art", "generative art",
}

// TechnologyCategory groups vocabulary terms into a named technology facet.
type TechnologyCategory struct {
	Name  string
	Terms []string
}

// TechnologyCategories are the technology facets reported by the
// per-category trend analysis, in presentation order.
var TechnologyCategories = []TechnologyCategory{
	{Name: "AI", Terms: []string{"artificial intelligence", "machine learning", "neural network", "deep learning"}},
	{Name: "AR_VR", Terms: []string{"augmented reality", "virtual reality", "AR", "VR"}},
	{Name: "Robotics", Terms: []string{"robotics", "robot", "automation"}},
	{Name: "Generative", Terms: []string{"generative", "algorithmic", "procedural"}},
	{Name: "HCI", Terms: []string{"human computer interaction", "interface", "interaction"}},
	{Name: "Fabrication", Terms: []string{"3D printing", "laser cutting", "CNC", "fabrication"}},
}
