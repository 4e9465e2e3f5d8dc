package config

const (
	defaultDataDir = "~/.local/share/tubemap"
	defaultLogDir  = "~/.local/share/tubemap/logs"

	defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultYouTubeMax     = 10
	defaultKakaoBaseURL   = "https://dapi.kakao.com/v2/local"
	defaultKakaoPageSize  = 5
	defaultTimeoutSeconds = 10

	defaultRegionWeight    = 30
	defaultFoodWeight      = 25
	defaultVisitWeight     = 25
	defaultFilterThreshold = 50

	defaultNameExact          = 50
	defaultNameContains       = 40
	defaultRegionMatch        = 30
	defaultRegionNeutral      = 10
	defaultCategoryRestaurant = 20
	defaultCategoryCafe       = 15
	defaultApproveThreshold   = 80
	defaultReviewThreshold    = 60

	defaultDelaySeconds   = 2
	defaultThumbTimeout   = 5
	defaultCommentTimeout = 10

	defaultNtfyTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns the baseline configuration before any file overrides.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		YouTube: YouTube{
			BaseURL:        defaultYouTubeBaseURL,
			MaxResults:     defaultYouTubeMax,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Kakao: Kakao{
			BaseURL:        defaultKakaoBaseURL,
			PageSize:       defaultKakaoPageSize,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Filter: Filter{
			RegionWeight: defaultRegionWeight,
			FoodWeight:   defaultFoodWeight,
			VisitWeight:  defaultVisitWeight,
			Threshold:    defaultFilterThreshold,
		},
		Match: Match{
			NameExact:          defaultNameExact,
			NameContains:       defaultNameContains,
			RegionMatch:        defaultRegionMatch,
			RegionNeutral:      defaultRegionNeutral,
			CategoryRestaurant: defaultCategoryRestaurant,
			CategoryCafe:       defaultCategoryCafe,
			ApproveThreshold:   defaultApproveThreshold,
			ReviewThreshold:    defaultReviewThreshold,
		},
		Pipeline: Pipeline{
			DelaySeconds:   defaultDelaySeconds,
			ThumbTimeout:   defaultThumbTimeout,
			CommentTimeout: defaultCommentTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
			RunSummaries:   true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
