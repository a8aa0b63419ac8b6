package metrics

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
