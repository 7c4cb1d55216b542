// Package applesdk locates and models Apple SDKs installed on a machine.
//
// # Concepts
//
// A developer directory is a tree holding SDKs and tools, typically
// /Applications/Xcode.app/Contents/Developer. Its Platforms directory holds
// one `<Platform>.platform` directory per target platform, each with SDKs in
// Developer/SDKs:
//
//	<developer>/Platforms/MacOSX.platform/Developer/SDKs/MacOSX14.2.sdk
//
// The Command Line Tools install SDKs directly, without platform directories:
//
//	/Library/Developer/CommandLineTools/SDKs/MacOSX14.2.sdk
//
// # SDKs
//
// Two types implement [SDK]. [UnparsedSDK] derives its platform and version
// from the directory name, so the version may be missing. [ParsedSDK] reads
// SDKSettings.json or SDKSettings.plist and always has a version. Functions
// that enumerate SDKs take a [Loader] selecting which type to build:
//
//	sdks, err := applesdk.FindDeveloperSDKs(dir, applesdk.LoadUnparsedSDK)
//
// # Searching
//
// [SdkSearch] combines the known install locations and filters the result:
//
//	search := applesdk.NewSdkSearch().
//		SystemXcodes(true).
//		Platform(applesdk.MacOSX).
//		MinimumVersion(applesdk.NewSdkVersion("13.0"))
//	sdks, err := applesdk.Search(search, applesdk.LoadParsedSDK)
//
// Results keep search order. Sort them, for example with
// [SdkVersion.Compare], to pick a preferred SDK.
//
// # Versions
//
// [SdkVersion] orders malformed version strings as 0.0.0 rather than failing,
// so unversioned SDKs sort last in a descending sort.
package applesdk
