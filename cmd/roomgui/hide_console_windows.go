//go:build windows

package main

import "golang.org/x/sys/windows"

const swHide = 0

// hideConsoleWindow hides the console a double-clicked roomgui.exe opens.
func hideConsoleWindow() {
	getConsole := windows.NewLazySystemDLL("kernel32.dll").NewProc("GetConsoleWindow")
	showWindow := windows.NewLazySystemDLL("user32.dll").NewProc("ShowWindow")
	if getConsole.Find() != nil || showWindow.Find() != nil {
		return
	}
	if hwnd, _, _ := getConsole.Call(); hwnd != 0 {
		_, _, _ = showWindow.Call(hwnd, swHide)
	}
}
