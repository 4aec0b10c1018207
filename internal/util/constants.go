package util

const DateFormat = "2006-01-02"

// ActivityWindowDays is the length of the trailing activity series.
const ActivityWindowDays = 30
