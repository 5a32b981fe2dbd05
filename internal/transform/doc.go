// Package transform rewrites South migration files so that a hard-coded model
// reference such as 'auth.User' resolves through a Django setting instead.
//
// The Transformer works on plain text. It never parses Python; it recognizes a
// fixed set of anchors and applies an ordered list of rewrite steps:
//
//  1. ReplaceLookup         u"orm['auth.User']" -> u"orm['{}']".format(AUTH_USER_MODEL)
//  2. ReplaceModel          'auth.user' (any case/quote) -> AUTH_USER_MODEL
//  3. ReplaceObjectName     'object_name': 'User' -> 'object_name': AUTH_USER_MODEL_NAME
//  4. AddDependency         depends_on gains (AUTH_USER_APP_LABEL, u'0001_initial')
//  5. AddSettingsImport     from django.conf import settings
//  6. AddSwappableConstants AUTH_USER_MODEL = getattr(settings, ...)
//  7. SetMarker             # SWAPIFIED: AUTH_USER_MODEL
//
// Order matters: step 6 introduces the literal default model string, which
// step 2 would otherwise rewrite.
//
// A missing anchor turns the corresponding step into a no-op. The marker is the
// only record that a file has been patched; Apply returns marked text unchanged.
package transform
