// Package process tears down the headless browser started for rasterization.
package process
