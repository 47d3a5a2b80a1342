package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/technelab/techne"
	"github.com/technelab/techne/ingestion"
)

// Curated demo corpus of art-technology articles.
var documents = []ingestion.Document{
	{
		URL:   "https://example.com/ai-art-museum",
		Title: "AI Art Exhibition Opens at Modern Museum",
		Content: "The Modern Museum of Art has opened a groundbreaking exhibition showcasing artificial intelligence in contemporary art. " +
			"The exhibition features works by leading artists who use machine learning algorithms to create stunning visual pieces. " +
			"Visitors can interact with AI-powered installations that respond to their movements and emotions. " +
			"The museum's curators believe this represents a new frontier in artistic expression, where technology and creativity merge seamlessly. " +
			"The exhibition includes works that explore themes of human-AI collaboration, algorithmic beauty, and the future of digital creativity.",
		PublishDate: "2024-01-15",
	},
	{
		URL:   "https://tech-art.org/robotics-performance",
		Title: "Robotic Performance Art Takes Center Stage",
		Content: "A new wave of performance art is emerging that incorporates robotics and automation. " +
			"Artists are programming robots to perform choreographed dances, create music, and even paint canvases. " +
			"These robotic performers challenge traditional notions of what constitutes art and who can be an artist. " +
			"The performances often explore themes of human-robot interaction, artificial creativity, and the boundaries between organic and synthetic expression. " +
			"Critics have praised the technical innovation while questioning the emotional depth of machine-generated art.",
		PublishDate: "2024-02-20",
	},
	{
		URL:   "https://digital-gallery.com/ar-exhibition",
		Title: "Augmented Reality Transforms Gallery Experience",
		Content: "The Digital Gallery has launched an innovative augmented reality exhibition that transforms how visitors experience art. " +
			"Using AR technology, visitors can see artworks come to life, interact with digital elements, and explore hidden layers of meaning. " +
			"The exhibition features both traditional paintings enhanced with AR overlays and purely digital artworks that exist only in augmented space. " +
			"This technology allows for new forms of storytelling and artistic expression that were previously impossible. " +
			"The gallery's director believes AR represents the future of art exhibition and visitor engagement.",
		PublishDate: "2024-03-10",
	},
	{
		URL:   "https://creative-tech.edu/generative-art-research",
		Title: "University Research Advances Generative Art Techniques",
		Content: "Researchers at Creative Technology University have developed new algorithms for generative art creation. " +
			"Their work combines computer vision, machine learning, and traditional artistic principles to create unique digital artworks. " +
			"The research team has published several papers on algorithmic creativity and the role of AI in artistic expression. " +
			"Their generative art system can create paintings, sculptures, and interactive installations based on input parameters and artistic styles. " +
			"The university has established a new lab dedicated to exploring the intersection of technology and creativity.",
		PublishDate: "2024-01-30",
	},
	{
		URL:   "https://museum-tech.org/virtual-reality-art",
		Title: "Virtual Reality Opens New Dimensions for Artists",
		Content: "Virtual reality technology is revolutionizing how artists create and present their work. " +
			"VR art installations allow viewers to step inside paintings, explore 3D sculptures from all angles, and experience immersive storytelling. " +
			"Artists are using VR tools to create environments that would be impossible in physical space, pushing the boundaries of spatial art. " +
			"Museums are investing heavily in VR technology to enhance visitor experiences and reach new audiences. " +
			"The technology enables new forms of collaborative art creation across geographical boundaries.",
		PublishDate: "2024-02-15",
	},
	{
		URL:   "https://art-ai.com/neural-style-transfer",
		Title: "Neural Style Transfer Creates New Artistic Possibilities",
		Content: "Neural style transfer technology is enabling artists to create unique works by combining different artistic styles. " +
			"This AI technique analyzes the style of one artwork and applies it to another image, creating hybrid pieces that blend multiple artistic traditions. " +
			"Artists are using this technology to explore new aesthetic possibilities and challenge traditional notions of artistic style. " +
			"The technique has been applied to everything from classical paintings to contemporary digital art. " +
			"Critics debate whether AI-assisted art maintains the authenticity and emotional depth of traditional artistic creation.",
		PublishDate: "2024-03-05",
	},
	{
		URL:   "https://interactive-art.net/haptic-interfaces",
		Title: "Haptic Technology Enhances Interactive Art Experiences",
		Content: "Haptic technology is being integrated into interactive art installations to create multi-sensory experiences. " +
			"Visitors can feel textures, vibrations, and forces that correspond to visual and auditory elements of the artwork. " +
			"This technology enables artists to create immersive experiences that engage multiple senses simultaneously. " +
			"Museums are experimenting with haptic interfaces to make art more accessible to visitors with visual impairments. " +
			"The technology opens new possibilities for tactile art and sensory storytelling.",
		PublishDate: "2024-01-25",
	},
	{
		URL:   "https://digital-fabrication.org/3d-printing-art",
		Title: "3D Printing Revolutionizes Sculpture and Installation Art",
		Content: "Three-dimensional printing technology is transforming sculpture and installation art by enabling complex geometries and rapid prototyping. " +
			"Artists are using 3D printing to create intricate sculptures that would be impossible to make by traditional methods. " +
			"The technology allows for precise control over form, texture, and material properties, opening new creative possibilities. " +
			"Some artists are exploring the aesthetic potential of 3D printing artifacts and layer lines as design elements. " +
			"The technology is making art creation more accessible and enabling new forms of collaborative design.",
		PublishDate: "2024-02-28",
	},
	{
		URL:   "https://media-art.org/computer-vision-museums",
		Title: "Computer Vision Enhances Museum Visitor Analytics",
		Content: "Museums are implementing computer vision systems to analyze visitor behavior and optimize exhibition layouts. " +
			"These systems track how visitors move through galleries, which artworks attract attention, and how long people spend viewing different pieces. " +
			"The data helps curators understand visitor preferences and create more engaging exhibitions. " +
			"Computer vision is also being used to detect emotions and engagement levels, providing insights into the impact of different artworks. " +
			"Privacy advocates have raised concerns about visitor tracking and data collection in cultural institutions.",
		PublishDate: "2024-03-15",
	},
	{
		URL:   "https://creative-algorithms.com/procedural-art",
		Title: "Procedural Art Generation Explores Algorithmic Creativity",
		Content: "Procedural art generation uses algorithms to create artworks based on mathematical rules and random processes. " +
			"Artists program systems that generate unique pieces each time they run, exploring the intersection of mathematics and aesthetics. " +
			"This approach challenges traditional notions of authorship and artistic control, raising questions about the role of the artist in algorithmic creation. " +
			"Procedural art has applications in video games, digital media, and interactive installations. " +
			"The field is expanding rapidly as computational power increases and new algorithms are developed.",
		PublishDate: "2024-01-20",
	},
}

var (
	dbPath       = flag.String("db", "./corpus_db", "path to BadgerDB corpus directory")
	seedFileName = flag.String("src", "", "JSONL file of documents to seed instead of the built-in demo set")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// documentsFromFile reads one JSON document object per line.
func documentsFromFile(filename string) ([]ingestion.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []ingestion.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var doc ingestion.Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, scanner.Err()
}

func main() {
	engine, err := techne.NewEngine(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ingester, err := engine.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	docs := documents
	if *seedFileName != "" {
		docs, err = documentsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	count, err := ingester.Ingest(context.Background(), docs)
	if err != nil {
		panic(err)
	}

	slog.Info("seeded corpus", "documents", len(docs), "chunks", count)
}
