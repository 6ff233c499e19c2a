package job

var Classify = classify
