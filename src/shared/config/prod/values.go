package prod

const (
	GOOGLE_STORAGE_HOST = "https://storage.googleapis.com"
	VERCEL_BLOB_HOST    = "https://blob.vercel-storage.com"
)
