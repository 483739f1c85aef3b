package notification

type PreferencesRequest struct {
	PushEnabled  *bool `json:"push_enabled"`
	SoundEnabled *bool `json:"sound_enabled"`
}
