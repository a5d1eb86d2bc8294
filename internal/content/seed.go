package content

// Seed returns the default content used to initialize an empty store, and the
// fallback served when the store cannot be read.
func Seed() SiteData {
	return SiteData{
		Profile: Profile{
			Name:      "Alex Dev",
			Title:     "Senior Full Stack Engineer",
			Tagline:   "Building digital experiences that matter.",
			About:     "I am a passionate developer with over 5 years of experience in building scalable web applications. I specialize in the React ecosystem and cloud-native architectures. When I'm not coding, I'm exploring new UI/UX trends or contributing to open source.",
			Email:     "hello@alexdev.com",
			GitHub:    "https://github.com",
			LinkedIn:  "https://linkedin.com",
			Location:  "San Francisco, CA",
			HeroImage: "https://picsum.photos/400/400",
		},
		Skills: []Skill{
			{ID: "1", Name: "React", Category: "Frontend", Level: 95},
			{ID: "2", Name: "TypeScript", Category: "Frontend", Level: 90},
			{ID: "3", Name: "Node.js", Category: "Backend", Level: 85},
			{ID: "4", Name: "Tailwind CSS", Category: "Design", Level: 90},
			{ID: "5", Name: "PostgreSQL", Category: "Backend", Level: 80},
			{ID: "6", Name: "Docker", Category: "Tools", Level: 75},
		},
		Projects: []Project{
			{
				ID:           "1",
				Title:        "E-Commerce Dashboard",
				Description:  "A comprehensive analytics dashboard for online retailers featuring real-time data visualization.",
				Technologies: []string{"React", "D3.js", "Firebase"},
				ImageURL:     "https://picsum.photos/600/400?random=1",
				Category:     "Web",
				DemoLink:     "https://example.com",
				RepoLink:     "https://github.com",
			},
			{
				ID:           "2",
				Title:        "TaskMaster App",
				Description:  "Productivity application focused on drag-and-drop task management.",
				Technologies: []string{"React Native", "Redux", "Node.js"},
				ImageURL:     "https://picsum.photos/600/400?random=2",
				Category:     "Mobile",
				RepoLink:     "https://github.com",
			},
			{
				ID:           "3",
				Title:        "Portfolio v1",
				Description:  "My previous portfolio site built with Gatsby and GraphQL.",
				Technologies: []string{"Gatsby", "GraphQL", "Styled Components"},
				ImageURL:     "https://picsum.photos/600/400?random=3",
				Category:     "Web",
				DemoLink:     "https://example.com",
			},
		},
	}
}
