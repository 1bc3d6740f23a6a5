package config

import (
	"errors"

	supa "github.com/supabase-community/supabase-go"
)

var SupabaseClient *supa.Client

// ErrSupabaseNotConfigured is returned when SUPABASE_URL or the key is missing.
var ErrSupabaseNotConfigured = errors.New("supabase: SUPABASE_URL and SUPABASE_SERVICE_KEY must be set")

// InitSupabase initializes the Supabase client from the loaded settings.
// The service key is preferred; the anon key is only used as a fallback.
func InitSupabase(s *Settings) (*supa.Client, error) {
	key := s.SupabaseServiceKey
	if key == "" {
		key = s.SupabaseAnonKey
	}
	if s.SupabaseURL == "" || key == "" {
		return nil, ErrSupabaseNotConfigured
	}

	client, err := supa.NewClient(s.SupabaseURL, key, nil)
	if err != nil {
		return nil, err
	}

	SupabaseClient = client
	if Log != nil {
		fields := map[string]interface{}{"url": s.SupabaseURL, "service_key": s.SupabaseServiceKey != ""}
		Log.WithFields(fields).Info("Supabase client initialized")
	}
	return client, nil
}
