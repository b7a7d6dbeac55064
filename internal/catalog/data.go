package catalog

import "starstream/internal/media"

const (
	posterDir    = "/assets/images/posters/"
	backdropDir  = "/assets/images/backdrops/"
	thumbnailDir = "/assets/images/thumbnails/"
	videoDir     = "/assets/videos/"
	downloadDir  = "/assets/downloads/"
)

// Default returns the built-in demo catalog.
func Default() Static {
	return defaultTitles
}

var defaultTitles = Static{
	{
		ID:            "m1",
		Title:         "نوفوكين",
		OriginalTitle: "Novocaine",
		Year:          "2023",
		Duration:      "1h 47m",
		Genre:         []string{"إثارة", "تشويق"},
		Description:   "قصة درامية عن طبيب أسنان يجد نفسه متورطًا في سلسلة من الأحداث المشوقة والخطيرة بعد لقائه مع مريضة جديدة.",
		Rating:        7.2,
		Kind:          media.Movie,
		Quality:       "HD",
		PosterURL:     posterDir + "novocaine.jpg",
		BackdropURL:   backdropDir + "novocaine-backdrop.jpg",
		VideoURL:      videoDir + "novocaine.mp4",
		DownloadURL:   downloadDir + "novocaine.mp4",
	},
	{
		ID:            "m2",
		Title:         "السرعة والغضب",
		OriginalTitle: "Fast & Furious",
		Year:          "2021",
		Duration:      "2h 15m",
		Genre:         []string{"أكشن", "إثارة"},
		Description:   "فريق من السائقين المحترفين يتحدون في سباقات خطيرة ومليئة بالإثارة.",
		Rating:        8.1,
		Kind:          media.Movie,
		Quality:       "4K",
		PosterURL:     posterDir + "fast-and-furious.jpg",
		BackdropURL:   backdropDir + "fast-and-furious-backdrop.jpg",
		VideoURL:      videoDir + "fast-and-furious.mp4",
		DownloadURL:   downloadDir + "fast-and-furious.mp4",
	},
	{
		ID:            "s1",
		Title:         "لعبة العروش",
		OriginalTitle: "Game of Thrones",
		Year:          "2011",
		Duration:      "8 Seasons",
		Genre:         []string{"دراما", "خيال"},
		Description:   "ملحمة خيالية عن صراع العائلات النبيلة على العرش الحديدي.",
		Rating:        9.3,
		Kind:          media.Series,
		Quality:       "HD",
		PosterURL:     posterDir + "game-of-thrones.jpg",
		BackdropURL:   backdropDir + "game-of-thrones-backdrop.jpg",
		Episodes: []media.Episode{
			{
				ID:            "e1",
				Title:         "الحلقة الأولى",
				Description:   "بداية الصراع على العرش الحديدي.",
				Duration:      "1h 2m",
				VideoURL:      videoDir + "game-of-thrones-s1e1.mp4",
				DownloadURL:   downloadDir + "game-of-thrones-s1e1.mp4",
				ThumbnailURL:  thumbnailDir + "game-of-thrones-s1e1-thumbnail.jpg",
				SeasonNumber:  1,
				EpisodeNumber: 1,
			},
			{
				ID:            "e2",
				Title:         "الحلقة الثانية",
				Description:   "تصاعد الأحداث بين العائلات النبيلة.",
				Duration:      "58m",
				VideoURL:      videoDir + "game-of-thrones-s1e2.mp4",
				DownloadURL:   downloadDir + "game-of-thrones-s1e2.mp4",
				ThumbnailURL:  thumbnailDir + "game-of-thrones-s1e2-thumbnail.jpg",
				SeasonNumber:  1,
				EpisodeNumber: 2,
			},
		},
	},
}
