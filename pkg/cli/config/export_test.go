package config

import "time"

func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

func NewIndexingForTest(path string, async bool, timeout time.Duration, concurrency int) *Indexing {
	return &Indexing{
		path:        path,
		async:       async,
		timeout:     timeout,
		concurrency: concurrency,
	}
}

func NewAuthForTest(secret string, ttl time.Duration, noAuthUID string) *Auth {
	return &Auth{
		jwtSecret: secret,
		tokenTTL:  ttl,
		admins:    []string{"admin"},
		noAuthUID: noAuthUID,
	}
}

func NewEmbeddingForTest(provider string, dimension int, openAIKey, openAIBaseURL string) *Embedding {
	return &Embedding{
		provider:      provider,
		dimension:     dimension,
		openAIKey:     openAIKey,
		openAIModel:   "text-embedding-3-small",
		openAIBaseURL: openAIBaseURL,
	}
}

func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

func NewVectorIndexForTest(backend string) *VectorIndex {
	return &VectorIndex{
		backend:  backend,
		m:        16,
		efSearch: 64,
	}
}

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
