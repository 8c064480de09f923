package domain

// SocialContent is the set of text variants produced for a case by the
// content-generation collaborator.
type SocialContent struct {
	InstagramPost string `json:"instagramPost"`
	ReelsScript   string `json:"reelsScript"`
	StoryText     string `json:"storyText"`
}
