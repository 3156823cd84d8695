package models

import "time"

// DemoBundle is what the read API serves when object storage is not
// configured, unreachable, or still empty. The read path must never fail.
func DemoBundle(now time.Time) NewsBundle {
	now = now.UTC()
	return NewsBundle{
		LastUpdated: now,
		NewsItems: []NewsItem{
			{
				ID:             "1",
				Headline:       "KATSEYE Continues Global Rise",
				Summary:        "The groundbreaking K-pop group formed through Netflix's Pop Star Academy continues to captivate audiences worldwide with their unique blend of talent and personality.",
				Category:       CategoryMusic,
				ContentType:    ContentArticle,
				SourceName:     "Demo News",
				RelevanceScore: 10,
			},
			{
				ID:             "2",
				Headline:       "Members Share Behind-the-Scenes Moments",
				Summary:        "Daniela, Lara, Manon, Megan, Sophia, and Yoonchae give fans a glimpse into their daily lives through social media updates.",
				Category:       CategorySocial,
				ContentType:    ContentArticle,
				SourceName:     "Demo News",
				RelevanceScore: 9,
			},
			{
				ID:             "3",
				Headline:       "Debut Single Reaches New Milestone",
				Summary:        "KATSEYE's debut continues to climb charts as the group gains recognition across music streaming platforms.",
				Category:       CategoryMusic,
				ContentType:    ContentArticle,
				SourceName:     "Demo News",
				RelevanceScore: 8,
			},
		},
		TrendingTopics: append([]string(nil), DefaultTrendingTopics...),
		GeneratedAt:    now,
	}
}

// SeedBundle is the initial data set published by the seed job on first
// deploy, before the research worker has produced anything.
func SeedBundle() NewsBundle {
	return NewsBundle{
		NewsItems: []NewsItem{
			{
				ID:             "1",
				Headline:       "KATSEYE Releases New Single 'Touch'",
				Summary:        "The global K-pop sensation KATSEYE has dropped their highly anticipated single 'Touch', showcasing their signature blend of pop perfection and powerful vocals. The track has already climbed streaming charts worldwide.",
				Category:       CategoryMusic,
				ContentType:    ContentArticle,
				SourceName:     FallbackSourceName,
				RelevanceScore: 10,
				MemberTags:     []string{TagGroup},
			},
			{
				ID:             "2",
				Headline:       "EYEKON Fandom Celebrates 1 Million Strong",
				Summary:        "The official KATSEYE fandom, known as EYEKON, has reached a milestone of 1 million members across social platforms. Fans are celebrating with special projects and trending hashtags.",
				Category:       CategoryFan,
				ContentType:    ContentFanContent,
				SourceName:     FallbackSourceName,
				RelevanceScore: 9,
				MemberTags:     []string{TagGroup},
			},
			{
				ID:             "3",
				Headline:       "Daniela and Sophia Share Dance Practice Video",
				Summary:        "Members Daniela and Sophia surprised fans with an impromptu dance practice video on social media, showcasing their incredible synchronization and stage presence.",
				Category:       CategorySocial,
				ContentType:    ContentTikTok,
				SourceName:     FallbackSourceName,
				RelevanceScore: 8,
				MemberTags:     []string{"Daniela", "Sophia"},
			},
			{
				ID:             "4",
				Headline:       "KATSEYE Confirmed for Major Music Festival",
				Summary:        "KATSEYE has been announced as headliners for an upcoming major music festival, marking their biggest live performance since debut. Tickets are expected to sell out quickly.",
				Category:       CategoryAppearance,
				ContentType:    ContentAnnouncement,
				SourceName:     FallbackSourceName,
				RelevanceScore: 9,
				MemberTags:     []string{TagGroup},
			},
			{
				ID:             "5",
				Headline:       "Netflix's Pop Star Academy Documentary Trending",
				Summary:        "The Netflix documentary 'Pop Star Academy: KATSEYE' that chronicles the group's formation is seeing renewed interest, with new viewers discovering the journey of Daniela, Lara, Manon, Megan, Sophia, and Yoonchae.",
				Category:       CategoryIndustry,
				ContentType:    ContentArticle,
				SourceName:     FallbackSourceName,
				RelevanceScore: 7,
				MemberTags:     []string{TagGroup},
			},
		},
		TrendingTopics: []string{"#KATSEYE", "#EYEKON", "#Touch", "#PopStarAcademy", "#HYBE"},
	}
}
