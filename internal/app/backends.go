package app

// Every inference backend registers itself with the provider registry.
import (
	_ "whisper-server/internal/app/api/openai/whisper"
	_ "whisper-server/internal/app/api/whisper_cpp"
)
