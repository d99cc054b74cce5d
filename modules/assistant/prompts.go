package assistant

import "fmt"

func descriptionPrompt(in DescriptionInput) string {
	return fmt.Sprintf(`Write a compelling, professional, and attractive rental property description for a
%d-bedroom %s located in %s.

Key highlights to mention: %s.

The tone should be inviting and trustworthy. Keep it under 150 words.
Do not include placeholders.`, in.Bedrooms, in.Type, in.Location, in.Highlights)
}

func searchPrompt(query string) string {
	return fmt.Sprintf(`A user is searching for a rental property with this query: %q.
Extract keywords that match these categories: Apartment, House, Office, Shop, Land.
Also extract location or price constraints if any.
Return a very short summary string for a filter label. e.g. "2-bed Apartment in Downtown"`, query)
}
